package usecase

import (
	"context"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// AlertStatus is the traffic-light classification of an expiry alert.
type AlertStatus string

const (
	AlertRed    AlertStatus = "red"    // critical: one day or less
	AlertYellow AlertStatus = "yellow" // warning: exactly two days
	AlertGreen  AlertStatus = "green"  // safe: more than two days
)

// ClassifyExpiry maps days-until-expiry onto the traffic light. The
// thresholds drive both styling and KPI counts and are exact: <=1 red,
// ==2 yellow, >2 green.
func ClassifyExpiry(daysUntilExpiry int) AlertStatus {
	if daysUntilExpiry <= 1 {
		return AlertRed
	}
	if daysUntilExpiry == 2 {
		return AlertYellow
	}
	return AlertGreen
}

// AlertFilters narrow the alert list. Dates are YYYY-MM-DD and bound
// the expiry date inclusively.
type AlertFilters struct {
	TrainerID string
	Color     string
	StartDate string
	EndDate   string
}

// ExpiryDashboard carries the filtered alerts plus KPIs from the full
// snapshot.
type ExpiryDashboard struct {
	Alerts   []entity.ExpiryAlert
	Trainers []entity.Trainer

	Red         int
	Yellow      int
	Green       int
	TotalUnsold int
}

type GetExpiryDashboardUseCase struct {
	Trainers entity.TrainerRepositoryInterface
	Views    entity.ViewRepositoryInterface
}

func NewGetExpiryDashboardUseCase(
	trainers entity.TrainerRepositoryInterface,
	views entity.ViewRepositoryInterface,
) *GetExpiryDashboardUseCase {
	return &GetExpiryDashboardUseCase{Trainers: trainers, Views: views}
}

func (uc *GetExpiryDashboardUseCase) Execute(ctx context.Context, filters AlertFilters) (*ExpiryDashboard, error) {
	alerts, err := uc.Views.ListExpiryAlerts(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "alerts_fetch", Message: err.Error()}
	}

	trainers, err := uc.Trainers.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "trainers_fetch", Message: err.Error()}
	}

	d := &ExpiryDashboard{
		Alerts:   FilterAlerts(alerts, filters),
		Trainers: trainers,
	}
	for _, a := range alerts {
		switch ClassifyExpiry(a.DaysUntilExpiry) {
		case AlertRed:
			d.Red++
		case AlertYellow:
			d.Yellow++
		case AlertGreen:
			d.Green++
		}
		d.TotalUnsold += a.UnsoldUnits
	}
	return d, nil
}

// FilterAlerts applies trainer, color and date-range filters. ISO dates
// compare correctly as strings, so no parsing is needed.
func FilterAlerts(alerts []entity.ExpiryAlert, f AlertFilters) []entity.ExpiryAlert {
	out := make([]entity.ExpiryAlert, 0, len(alerts))
	for _, a := range alerts {
		if f.TrainerID != "" && f.TrainerID != "all" && a.TrainerID != f.TrainerID {
			continue
		}
		if f.Color != "" && f.Color != "all" && string(ClassifyExpiry(a.DaysUntilExpiry)) != f.Color {
			continue
		}
		if f.StartDate != "" && a.ExpiryDate < f.StartDate {
			continue
		}
		if f.EndDate != "" && a.ExpiryDate > f.EndDate {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CriticalAlerts returns the red subset, used by the expiry digest.
func CriticalAlerts(alerts []entity.ExpiryAlert) []entity.ExpiryAlert {
	var out []entity.ExpiryAlert
	for _, a := range alerts {
		if ClassifyExpiry(a.DaysUntilExpiry) == AlertRed {
			out = append(out, a)
		}
	}
	return out
}
