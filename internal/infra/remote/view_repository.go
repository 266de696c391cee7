package remote

import (
	"context"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
)

// ViewRepository reads the precomputed expiry_alerts and
// trainer_rankings views. Both are pre-joined and pre-sorted
// server-side.
type ViewRepository struct {
	Client *postgrest.Client
}

func NewViewRepository(client *postgrest.Client) *ViewRepository {
	return &ViewRepository{Client: client}
}

func (r *ViewRepository) ListExpiryAlerts(ctx context.Context) ([]entity.ExpiryAlert, error) {
	var rows []entity.ExpiryAlert
	err := r.Client.Select(ctx, "expiry_alerts", postgrest.Query{OrderBy: "days_until_expiry"}, &rows)
	return rows, err
}

func (r *ViewRepository) ListTrainerRankings(ctx context.Context, limit int) ([]entity.TrainerRanking, error) {
	var rows []entity.TrainerRanking
	err := r.Client.Select(ctx, "trainer_rankings", postgrest.Query{OrderBy: "rank", Limit: limit}, &rows)
	return rows, err
}

var _ entity.ViewRepositoryInterface = (*ViewRepository)(nil)
