package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LeadStatusNew       = "new"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

type Lead struct {
	ID             string    `json:"id"`
	TrainerID      string    `json:"trainer_id"`
	TrainerContact string    `json:"trainer_contact,omitempty"`
	BuyerName      string    `json:"buyer_name"`
	BuyerContact   string    `json:"buyer_contact,omitempty"`
	Status         string    `json:"status"` // new, converted, lost
	CreatedAt      time.Time `json:"created_at"`

	TrainerName string `json:"trainer_name,omitempty"`
}

func NewLead(trainerID, buyerName string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		TrainerID: trainerID,
		BuyerName: strings.TrimSpace(buyerName),
		Status:    LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}
}

type LeadRepositoryInterface interface {
	// List returns leads joined with trainer name/contact, newest first.
	List(ctx context.Context) ([]Lead, error)
	Create(ctx context.Context, l *Lead) error
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, id string) error
}
