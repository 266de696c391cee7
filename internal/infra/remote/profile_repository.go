package remote

import (
	"context"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
)

type ProfileRepository struct {
	Client *postgrest.Client
}

func NewProfileRepository(client *postgrest.Client) *ProfileRepository {
	return &ProfileRepository{Client: client}
}

// FindByUserID returns nil when no row comes back, which also covers a
// row-level-security denial: the caller degrades to "no profile" instead
// of failing.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var rows []entity.Profile
	err := r.Client.Select(ctx, "profiles", postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("id", userID)},
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

var _ entity.ProfileRepositoryInterface = (*ProfileRepository)(nil)
