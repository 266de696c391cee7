// Package remote implements the entity repositories against the
// managed data API. Each mutation writes a single row; callers re-fetch
// the whole snapshot afterwards.
package remote

import (
	"context"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
)

type TrainerRepository struct {
	Client *postgrest.Client
}

func NewTrainerRepository(client *postgrest.Client) *TrainerRepository {
	return &TrainerRepository{Client: client}
}

type trainerWrite struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
	Notes   *string `json:"notes"`
}

func (r *TrainerRepository) List(ctx context.Context) ([]entity.Trainer, error) {
	var rows []entity.Trainer
	err := r.Client.Select(ctx, "trainers", postgrest.Query{OrderBy: "name"}, &rows)
	return rows, err
}

func (r *TrainerRepository) Create(ctx context.Context, t *entity.Trainer) error {
	return r.Client.Insert(ctx, "trainers", trainerWrite{
		ID:      t.ID,
		Name:    t.Name,
		Contact: nullString(t.Contact),
		Notes:   nullString(t.Notes),
	})
}

func (r *TrainerRepository) Update(ctx context.Context, t *entity.Trainer) error {
	return r.Client.Update(ctx, "trainers", t.ID, map[string]any{
		"name":    t.Name,
		"contact": nullString(t.Contact),
		"notes":   nullString(t.Notes),
	})
}

func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	return r.Client.Delete(ctx, "trainers", id)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ entity.TrainerRepositoryInterface = (*TrainerRepository)(nil)
