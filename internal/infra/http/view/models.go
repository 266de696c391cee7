package view

import "github.com/sunnyops/sunny-admin/internal/entity"

// Per-page view models, built by the handlers.

type LoginData struct {
	Configured bool
	From       string
	Email      string
}

type SaleRow struct {
	entity.Sale
	ExpiringSoon bool
}

type SalesData struct {
	Rows     []SaleRow
	Trainers []entity.Trainer
	Rankings []entity.TrainerRanking

	TotalUnitsSold     int
	TotalUnitsAssigned int
	TotalIncentives    float64
	AvgMargin          float64
	ExpiringSoonCount  int

	SortField string
	Ascending bool

	// Edit pre-fills the sale form for an existing row.
	Edit *entity.Sale
}

type LeadsData struct {
	Leads    []entity.Lead
	Trainers []entity.Trainer

	Total          int
	New            int
	Converted      int
	Lost           int
	ConversionRate float64

	Status    string
	TrainerID string
	Search    string
}

type AlertRow struct {
	entity.ExpiryAlert
	Color string
}

type CTAData struct {
	Rows     []AlertRow
	Trainers []entity.Trainer

	Red         int
	Yellow      int
	Green       int
	TotalUnsold int

	TrainerID string
	Color     string
	StartDate string
	EndDate   string

	MailEnabled bool
}
