package remote

import (
	"context"
	"time"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
)

type SaleRepository struct {
	Client *postgrest.Client
}

func NewSaleRepository(client *postgrest.Client) *SaleRepository {
	return &SaleRepository{Client: client}
}

// saleRow carries the embedded trainer resource the data API returns
// for select=*,trainers(name,contact).
type saleRow struct {
	ID               string    `json:"id"`
	TrainerID        string    `json:"trainer_id"`
	BuyerName        string    `json:"buyer_name"`
	BuyerContact     string    `json:"buyer_contact"`
	UnitsAssigned    int       `json:"units_assigned"`
	UnitsSold        int       `json:"units_sold"`
	MarginPercentage float64   `json:"margin_percentage"`
	IncentiveAmount  float64   `json:"incentive_amount"`
	ExpiryDate       string    `json:"expiry_date"`
	CreatedAt        time.Time `json:"created_at"`
	Trainers         *struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	} `json:"trainers"`
}

type saleWrite struct {
	ID               string  `json:"id,omitempty"`
	TrainerID        string  `json:"trainer_id"`
	BuyerName        string  `json:"buyer_name"`
	BuyerContact     string  `json:"buyer_contact"`
	UnitsAssigned    int     `json:"units_assigned"`
	UnitsSold        int     `json:"units_sold"`
	MarginPercentage float64 `json:"margin_percentage"`
	IncentiveAmount  float64 `json:"incentive_amount"`
	ExpiryDate       *string `json:"expiry_date"`
}

func (r *SaleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	var rows []saleRow
	err := r.Client.Select(ctx, "sales", postgrest.Query{
		Select:     "*,trainers(name,contact)",
		OrderBy:    "created_at",
		Descending: true,
	}, &rows)
	if err != nil {
		return nil, err
	}

	sales := make([]entity.Sale, 0, len(rows))
	for _, row := range rows {
		s := entity.Sale{
			ID:               row.ID,
			TrainerID:        row.TrainerID,
			BuyerName:        row.BuyerName,
			BuyerContact:     row.BuyerContact,
			UnitsAssigned:    row.UnitsAssigned,
			UnitsSold:        row.UnitsSold,
			MarginPercentage: row.MarginPercentage,
			IncentiveAmount:  row.IncentiveAmount,
			ExpiryDate:       row.ExpiryDate,
			CreatedAt:        row.CreatedAt,
		}
		if row.Trainers != nil {
			s.TrainerName = row.Trainers.Name
			s.TrainerContact = row.Trainers.Contact
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (r *SaleRepository) Create(ctx context.Context, s *entity.Sale) error {
	return r.Client.Insert(ctx, "sales", writeSale(s, true))
}

func (r *SaleRepository) Update(ctx context.Context, s *entity.Sale) error {
	return r.Client.Update(ctx, "sales", s.ID, writeSale(s, false))
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	return r.Client.Delete(ctx, "sales", id)
}

func writeSale(s *entity.Sale, withID bool) saleWrite {
	w := saleWrite{
		TrainerID:        s.TrainerID,
		BuyerName:        s.BuyerName,
		BuyerContact:     s.BuyerContact,
		UnitsAssigned:    s.UnitsAssigned,
		UnitsSold:        s.UnitsSold,
		MarginPercentage: s.MarginPercentage,
		IncentiveAmount:  s.IncentiveAmount,
		ExpiryDate:       nullString(s.ExpiryDate),
	}
	if withID {
		w.ID = s.ID
	}
	return w
}

var _ entity.SaleRepositoryInterface = (*SaleRepository)(nil)
