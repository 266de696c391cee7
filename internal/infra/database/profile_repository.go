package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// FindByUserID returns nil without error when no profile row exists.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `SELECT id, COALESCE(email, ''), role FROM profiles WHERE id = $1`

	var p entity.Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.Email, &p.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ entity.ProfileRepositoryInterface = (*ProfileRepository)(nil)
