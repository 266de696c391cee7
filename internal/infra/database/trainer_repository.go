// Package database is the direct-Postgres rendition of the entity
// repositories, for deployments that reach the managed database through
// a pooled DATABASE_URL instead of the REST data API.
package database

import (
	"context"
	"database/sql"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type TrainerRepository struct {
	DB *sql.DB
}

func NewTrainerRepository(db *sql.DB) *TrainerRepository {
	return &TrainerRepository{DB: db}
}

func (r *TrainerRepository) List(ctx context.Context) ([]entity.Trainer, error) {
	query := `
		SELECT id, name, COALESCE(contact, ''), COALESCE(notes, ''), created_at
		FROM trainers
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []entity.Trainer
	for rows.Next() {
		var t entity.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Contact, &t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

func (r *TrainerRepository) Create(ctx context.Context, t *entity.Trainer) error {
	query := `
		INSERT INTO trainers (id, name, contact, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Name,
		nullString(t.Contact),
		nullString(t.Notes),
		t.CreatedAt,
	)
	return err
}

func (r *TrainerRepository) Update(ctx context.Context, t *entity.Trainer) error {
	query := `
		UPDATE trainers
		SET name = $2, contact = $3, notes = $4
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query, t.ID, t.Name, nullString(t.Contact), nullString(t.Notes))
	return err
}

func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ entity.TrainerRepositoryInterface = (*TrainerRepository)(nil)
