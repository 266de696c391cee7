package usecase

import (
	"context"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// AuthGateway is the remote auth service surface the coordinator needs.
// Subscribe returns a state-change channel plus its unsubscribe func.
type AuthGateway interface {
	GetSession(ctx context.Context) (*entity.AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error)
	SignOut(ctx context.Context) error
	Subscribe() (<-chan entity.AuthEvent, func())
}

// EmailService sends the operator-triggered expiry digest.
type EmailService interface {
	SendExpiryDigest(to string, alerts []entity.ExpiryAlert) error
}
