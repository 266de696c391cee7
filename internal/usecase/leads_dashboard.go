package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// LeadFilters narrow the in-memory lead snapshot. Zero values ("" or
// "all") leave a dimension unfiltered.
type LeadFilters struct {
	Status    string
	TrainerID string
	Search    string
}

// LeadsDashboard carries the filtered rows plus KPIs computed from the
// unfiltered snapshot.
type LeadsDashboard struct {
	Leads    []entity.Lead
	Trainers []entity.Trainer

	Total          int
	New            int
	Converted      int
	Lost           int
	ConversionRate float64 // percent, one decimal
}

type GetLeadsDashboardUseCase struct {
	Trainers entity.TrainerRepositoryInterface
	Leads    entity.LeadRepositoryInterface
}

func NewGetLeadsDashboardUseCase(
	trainers entity.TrainerRepositoryInterface,
	leads entity.LeadRepositoryInterface,
) *GetLeadsDashboardUseCase {
	return &GetLeadsDashboardUseCase{Trainers: trainers, Leads: leads}
}

func (uc *GetLeadsDashboardUseCase) Execute(ctx context.Context, filters LeadFilters) (*LeadsDashboard, error) {
	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "leads_fetch", Message: err.Error()}
	}

	trainers, err := uc.Trainers.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "trainers_fetch", Message: err.Error()}
	}

	d := &LeadsDashboard{
		Leads:    FilterLeads(leads, filters),
		Trainers: trainers,
		Total:    len(leads),
	}
	for _, l := range leads {
		switch l.Status {
		case entity.LeadStatusNew:
			d.New++
		case entity.LeadStatusConverted:
			d.Converted++
		case entity.LeadStatusLost:
			d.Lost++
		}
	}
	d.ConversionRate = ConversionRate(d.Converted, d.Total)
	return d, nil
}

// FilterLeads applies status, trainer and free-text filters to the
// snapshot. The search matches trainer name, buyer name and buyer
// contact, case-insensitively.
func FilterLeads(leads []entity.Lead, f LeadFilters) []entity.Lead {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if f.Status != "" && f.Status != "all" && l.Status != f.Status {
			continue
		}
		if f.TrainerID != "" && f.TrainerID != "all" && l.TrainerID != f.TrainerID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(l.TrainerName), query) &&
			!strings.Contains(strings.ToLower(l.BuyerName), query) &&
			!strings.Contains(strings.ToLower(l.BuyerContact), query) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ConversionRate returns converted/total as a percentage rounded to one
// decimal; zero total yields zero.
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(converted)/float64(total)*1000) / 10
}
