package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// Stock expiring within this many days with unsold units triggers the
// sales-page banner and row highlight.
const expiringSoonDays = 3

// SalesDashboard is the full sales-page snapshot: raw rows plus the
// aggregates derived from them. Aggregates always come from the whole
// snapshot, not the sorted view.
type SalesDashboard struct {
	Sales    []entity.Sale
	Trainers []entity.Trainer
	Rankings []entity.TrainerRanking

	TotalUnitsSold     int
	TotalUnitsAssigned int
	TotalIncentives    float64
	AvgMargin          float64 // one decimal

	ExpiringSoon []entity.Sale
}

type GetSalesDashboardUseCase struct {
	Trainers entity.TrainerRepositoryInterface
	Sales    entity.SaleRepositoryInterface
	Views    entity.ViewRepositoryInterface
	Now      func() time.Time
}

func NewGetSalesDashboardUseCase(
	trainers entity.TrainerRepositoryInterface,
	sales entity.SaleRepositoryInterface,
	views entity.ViewRepositoryInterface,
) *GetSalesDashboardUseCase {
	return &GetSalesDashboardUseCase{
		Trainers: trainers,
		Sales:    sales,
		Views:    views,
		Now:      time.Now,
	}
}

// Execute fetches the snapshot and sorts the sales in memory by the
// requested field. Unknown fields fall back to units_sold descending.
func (uc *GetSalesDashboardUseCase) Execute(ctx context.Context, sortField string, ascending bool) (*SalesDashboard, error) {
	trainers, err := uc.Trainers.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "trainers_fetch", Message: err.Error()}
	}

	sales, err := uc.Sales.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "sales_fetch", Message: err.Error()}
	}

	rankings, err := uc.Views.ListTrainerRankings(ctx, 10)
	if err != nil {
		return nil, &TechnicalError{Code: "rankings_fetch", Message: err.Error()}
	}

	d := &SalesDashboard{
		Sales:    sales,
		Trainers: trainers,
		Rankings: rankings,
	}

	for _, s := range sales {
		d.TotalUnitsSold += s.UnitsSold
		d.TotalUnitsAssigned += s.UnitsAssigned
		d.TotalIncentives += s.IncentiveAmount
		d.AvgMargin += s.MarginPercentage
	}
	if len(sales) > 0 {
		d.AvgMargin = math.Round(d.AvgMargin/float64(len(sales))*10) / 10
	}

	now := uc.Now()
	for _, s := range sales {
		if days, ok := s.DaysUntilExpiry(now); ok && days <= expiringSoonDays && s.Unsold() > 0 {
			d.ExpiringSoon = append(d.ExpiringSoon, s)
		}
	}

	SortSales(d.Sales, sortField, ascending)
	return d, nil
}

// SortSales orders in place: string fields lexicographically, numeric
// fields numerically. The sort is stable so equal keys keep their
// fetched (newest-first) order.
func SortSales(sales []entity.Sale, field string, ascending bool) {
	less := saleLess(field)
	sort.SliceStable(sales, func(i, j int) bool {
		if ascending {
			return less(sales[i], sales[j])
		}
		return less(sales[j], sales[i])
	})
}

func saleLess(field string) func(a, b entity.Sale) bool {
	switch field {
	case "trainer_name":
		return func(a, b entity.Sale) bool {
			return strings.ToLower(a.TrainerName) < strings.ToLower(b.TrainerName)
		}
	case "units_assigned":
		return func(a, b entity.Sale) bool { return a.UnitsAssigned < b.UnitsAssigned }
	case "margin_percentage":
		return func(a, b entity.Sale) bool { return a.MarginPercentage < b.MarginPercentage }
	case "incentive_amount":
		return func(a, b entity.Sale) bool { return a.IncentiveAmount < b.IncentiveAmount }
	case "expiry_date":
		// ISO dates compare correctly as strings; blanks sort first.
		return func(a, b entity.Sale) bool { return a.ExpiryDate < b.ExpiryDate }
	default: // units_sold
		return func(a, b entity.Sale) bool { return a.UnitsSold < b.UnitsSold }
	}
}
