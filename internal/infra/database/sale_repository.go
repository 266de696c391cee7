package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type SaleRepository struct {
	DB *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{DB: db}
}

func (r *SaleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	query := `
		SELECT s.id, s.trainer_id,
		       COALESCE(s.buyer_name, ''), COALESCE(s.buyer_contact, ''),
		       s.units_assigned, s.units_sold,
		       s.margin_percentage, s.incentive_amount,
		       COALESCE(to_char(s.expiry_date, 'YYYY-MM-DD'), ''),
		       s.created_at,
		       COALESCE(t.name, ''), COALESCE(t.contact, '')
		FROM sales s
		LEFT JOIN trainers t ON t.id = s.trainer_id
		ORDER BY s.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.TrainerID,
			&s.BuyerName, &s.BuyerContact,
			&s.UnitsAssigned, &s.UnitsSold,
			&s.MarginPercentage, &s.IncentiveAmount,
			&s.ExpiryDate,
			&s.CreatedAt,
			&s.TrainerName, &s.TrainerContact,
		); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, trainer_id, buyer_name, buyer_contact,
		                   units_assigned, units_sold, margin_percentage,
		                   incentive_amount, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::date, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.TrainerID,
		nullString(s.BuyerName), nullString(s.BuyerContact),
		s.UnitsAssigned, s.UnitsSold,
		s.MarginPercentage, s.IncentiveAmount,
		s.ExpiryDate, s.CreatedAt,
	)
	return translateError(err)
}

func (r *SaleRepository) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales
		SET trainer_id = $2, buyer_name = $3, buyer_contact = $4,
		    units_assigned = $5, units_sold = $6,
		    margin_percentage = $7, incentive_amount = $8,
		    expiry_date = NULLIF($9, '')::date
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.TrainerID,
		nullString(s.BuyerName), nullString(s.BuyerContact),
		s.UnitsAssigned, s.UnitsSold,
		s.MarginPercentage, s.IncentiveAmount,
		s.ExpiryDate,
	)
	return translateError(err)
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	return err
}

var ErrUnknownTrainer = errors.New("referenced trainer does not exist")

// translateError maps the foreign key violation a stale trainer pick can
// produce into a message the page can show as-is.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrUnknownTrainer
	}
	return err
}

var _ entity.SaleRepositoryInterface = (*SaleRepository)(nil)
