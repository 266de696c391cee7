package database

import (
	"context"
	"database/sql"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT l.id, l.trainer_id,
		       COALESCE(l.trainer_contact, t.contact, ''),
		       COALESCE(l.buyer_name, ''), COALESCE(l.buyer_contact, ''),
		       l.status, l.created_at,
		       COALESCE(t.name, '')
		FROM leads l
		LEFT JOIN trainers t ON t.id = l.trainer_id
		ORDER BY l.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(
			&l.ID, &l.TrainerID,
			&l.TrainerContact,
			&l.BuyerName, &l.BuyerContact,
			&l.Status, &l.CreatedAt,
			&l.TrainerName,
		); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, trainer_id, trainer_contact, buyer_name,
		                   buyer_contact, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.TrainerID,
		nullString(l.TrainerContact),
		l.BuyerName,
		nullString(l.BuyerContact),
		l.Status, l.CreatedAt,
	)
	return translateError(err)
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads
		SET trainer_id = $2, trainer_contact = $3, buyer_name = $4,
		    buyer_contact = $5, status = $6
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.TrainerID,
		nullString(l.TrainerContact),
		l.BuyerName,
		nullString(l.BuyerContact),
		l.Status,
	)
	return translateError(err)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)
