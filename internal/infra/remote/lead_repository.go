package remote

import (
	"context"
	"time"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
)

type LeadRepository struct {
	Client *postgrest.Client
}

func NewLeadRepository(client *postgrest.Client) *LeadRepository {
	return &LeadRepository{Client: client}
}

type leadRow struct {
	ID             string    `json:"id"`
	TrainerID      string    `json:"trainer_id"`
	TrainerContact string    `json:"trainer_contact"`
	BuyerName      string    `json:"buyer_name"`
	BuyerContact   string    `json:"buyer_contact"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	Trainers       *struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	} `json:"trainers"`
}

type leadWrite struct {
	ID             string  `json:"id,omitempty"`
	TrainerID      string  `json:"trainer_id"`
	TrainerContact *string `json:"trainer_contact"`
	BuyerName      string  `json:"buyer_name"`
	BuyerContact   *string `json:"buyer_contact"`
	Status         string  `json:"status"`
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	var rows []leadRow
	err := r.Client.Select(ctx, "leads", postgrest.Query{
		Select:     "*,trainers(name,contact)",
		OrderBy:    "created_at",
		Descending: true,
	}, &rows)
	if err != nil {
		return nil, err
	}

	leads := make([]entity.Lead, 0, len(rows))
	for _, row := range rows {
		l := entity.Lead{
			ID:             row.ID,
			TrainerID:      row.TrainerID,
			TrainerContact: row.TrainerContact,
			BuyerName:      row.BuyerName,
			BuyerContact:   row.BuyerContact,
			Status:         row.Status,
			CreatedAt:      row.CreatedAt,
		}
		if row.Trainers != nil {
			l.TrainerName = row.Trainers.Name
			if l.TrainerContact == "" {
				l.TrainerContact = row.Trainers.Contact
			}
		}
		leads = append(leads, l)
	}
	return leads, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	return r.Client.Insert(ctx, "leads", writeLead(l, true))
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	return r.Client.Update(ctx, "leads", l.ID, writeLead(l, false))
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.Client.Delete(ctx, "leads", id)
}

func writeLead(l *entity.Lead, withID bool) leadWrite {
	w := leadWrite{
		TrainerID:      l.TrainerID,
		TrainerContact: nullString(l.TrainerContact),
		BuyerName:      l.BuyerName,
		BuyerContact:   nullString(l.BuyerContact),
		Status:         l.Status,
	}
	if withID {
		w.ID = l.ID
	}
	return w
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)
