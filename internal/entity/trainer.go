package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trainer is the agent inventory and sales are assigned to.
type Trainer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTrainer trims input; contact and notes are optional.
func NewTrainer(name, contact, notes string) *Trainer {
	return &Trainer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now().UTC(),
	}
}

type TrainerRepositoryInterface interface {
	List(ctx context.Context) ([]Trainer, error)
	Create(ctx context.Context, t *Trainer) error
	Update(ctx context.Context, t *Trainer) error
	Delete(ctx context.Context, id string) error
}
