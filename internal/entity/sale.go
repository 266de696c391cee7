package entity

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// Sale is one inventory assignment to a trainer. TrainerName and
// TrainerContact are denormalized from the joined trainer row and are
// never written back.
type Sale struct {
	ID               string    `json:"id"`
	TrainerID        string    `json:"trainer_id"`
	BuyerName        string    `json:"buyer_name,omitempty"`
	BuyerContact     string    `json:"buyer_contact,omitempty"`
	UnitsAssigned    int       `json:"units_assigned"`
	UnitsSold        int       `json:"units_sold"`
	MarginPercentage float64   `json:"margin_percentage"`
	IncentiveAmount  float64   `json:"incentive_amount"`
	ExpiryDate       string    `json:"expiry_date,omitempty"` // YYYY-MM-DD
	CreatedAt        time.Time `json:"created_at"`

	TrainerName    string `json:"trainer_name,omitempty"`
	TrainerContact string `json:"trainer_contact,omitempty"`
}

func NewSale(trainerID string) *Sale {
	return &Sale{
		ID:        uuid.New().String(),
		TrainerID: trainerID,
		CreatedAt: time.Now().UTC(),
	}
}

// DaysUntilExpiry returns calendar days from now until the expiry date,
// rounded up the way the dashboard counts them. ok is false when the
// sale has no parseable expiry date.
func (s *Sale) DaysUntilExpiry(now time.Time) (int, bool) {
	if s.ExpiryDate == "" {
		return 0, false
	}
	expiry, err := time.Parse("2006-01-02", s.ExpiryDate)
	if err != nil {
		return 0, false
	}
	days := math.Ceil(expiry.Sub(now).Hours() / 24)
	return int(days), true
}

// Unsold returns the stock still at risk on this sale.
func (s *Sale) Unsold() int {
	if s.UnitsAssigned <= s.UnitsSold {
		return 0
	}
	return s.UnitsAssigned - s.UnitsSold
}

type SaleRepositoryInterface interface {
	// List returns sales joined with trainer name/contact, newest first.
	List(ctx context.Context) ([]Sale, error)
	Create(ctx context.Context, s *Sale) error
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id string) error
}
