package usecase

// Form payloads, already type-converted by the handlers. Numeric fields
// that fail to parse arrive as zero, matching the dashboard's forgiving
// form handling; only presence of required selections is validated.

type SaleInput struct {
	ID               string // empty for a new sale
	TrainerID        string
	BuyerName        string
	BuyerContact     string
	UnitsAssigned    int
	UnitsSold        int
	MarginPercentage float64
	IncentiveAmount  float64
	ExpiryDate       string // YYYY-MM-DD or empty
}

type LeadInput struct {
	ID             string
	TrainerID      string
	TrainerContact string
	BuyerName      string
	BuyerContact   string
	Status         string
}

type TrainerInput struct {
	Name    string
	Contact string
	Notes   string
}
