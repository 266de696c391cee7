package database

import (
	"context"
	"database/sql"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// ViewRepository computes the derived views with the same shape the
// managed service exposes as expiry_alerts and trainer_rankings.
type ViewRepository struct {
	DB *sql.DB
}

func NewViewRepository(db *sql.DB) *ViewRepository {
	return &ViewRepository{DB: db}
}

func (r *ViewRepository) ListExpiryAlerts(ctx context.Context) ([]entity.ExpiryAlert, error) {
	query := `
		SELECT s.id, s.trainer_id,
		       COALESCE(t.name, ''), COALESCE(t.contact, ''),
		       COALESCE(s.buyer_name, ''),
		       s.units_assigned,
		       s.units_assigned - s.units_sold,
		       to_char(s.expiry_date, 'YYYY-MM-DD'),
		       (s.expiry_date - CURRENT_DATE)
		FROM sales s
		LEFT JOIN trainers t ON t.id = s.trainer_id
		WHERE s.expiry_date IS NOT NULL
		  AND s.units_assigned > s.units_sold
		ORDER BY s.expiry_date - CURRENT_DATE
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []entity.ExpiryAlert
	for rows.Next() {
		var a entity.ExpiryAlert
		if err := rows.Scan(
			&a.SaleID, &a.TrainerID,
			&a.TrainerName, &a.TrainerContact,
			&a.BuyerName,
			&a.UnitsAssigned, &a.UnsoldUnits,
			&a.ExpiryDate, &a.DaysUntilExpiry,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *ViewRepository) ListTrainerRankings(ctx context.Context, limit int) ([]entity.TrainerRanking, error) {
	query := `
		SELECT t.id, t.name, COALESCE(t.contact, ''),
		       RANK() OVER (ORDER BY SUM(s.units_sold) DESC),
		       COALESCE(SUM(s.units_sold), 0),
		       COALESCE(SUM(s.incentive_amount), 0)
		FROM trainers t
		JOIN sales s ON s.trainer_id = t.id
		GROUP BY t.id, t.name, t.contact
		ORDER BY 4
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rankings []entity.TrainerRanking
	for rows.Next() {
		var tr entity.TrainerRanking
		if err := rows.Scan(
			&tr.TrainerID, &tr.TrainerName, &tr.TrainerContact,
			&tr.Rank, &tr.TotalUnitsSold, &tr.TotalIncentive,
		); err != nil {
			return nil, err
		}
		rankings = append(rankings, tr)
	}
	return rankings, rows.Err()
}

var _ entity.ViewRepositoryInterface = (*ViewRepository)(nil)
