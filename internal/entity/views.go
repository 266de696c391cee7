package entity

import "context"

// ExpiryAlert is a row of the expiry_alerts view: one sale with unsold
// stock approaching its deadline. Computed by the data service, read-only.
type ExpiryAlert struct {
	SaleID          string `json:"sale_id"`
	TrainerID       string `json:"trainer_id"`
	TrainerName     string `json:"trainer_name"`
	TrainerContact  string `json:"trainer_contact,omitempty"`
	BuyerName       string `json:"buyer_name,omitempty"`
	UnitsAssigned   int    `json:"units_assigned"`
	UnsoldUnits     int    `json:"unsold_units"`
	ExpiryDate      string `json:"expiry_date"` // YYYY-MM-DD
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// TrainerRanking is a row of the trainer_rankings view, pre-sorted by rank.
type TrainerRanking struct {
	TrainerID      string  `json:"trainer_id"`
	TrainerName    string  `json:"trainer_name"`
	TrainerContact string  `json:"trainer_contact,omitempty"`
	Rank           int     `json:"rank"`
	TotalUnitsSold int     `json:"total_units_sold"`
	TotalIncentive float64 `json:"total_incentive"`
}

type ViewRepositoryInterface interface {
	// ListExpiryAlerts returns the view ordered by days_until_expiry ascending.
	ListExpiryAlerts(ctx context.Context) ([]ExpiryAlert, error)
	// ListTrainerRankings returns the view ordered by rank, capped at limit.
	ListTrainerRankings(ctx context.Context, limit int) ([]TrainerRanking, error)
}
