package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/http/view"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type SalesHandler struct {
	Dashboard   *usecase.GetSalesDashboardUseCase
	SaveSale    *usecase.SaveSaleUseCase
	SaveTrainer *usecase.SaveTrainerUseCase
	Sales       entity.SaleRepositoryInterface
	View        *view.Renderer
	BasePath    string
	Log         *slog.Logger
}

func NewSalesHandler(
	dashboard *usecase.GetSalesDashboardUseCase,
	saveSale *usecase.SaveSaleUseCase,
	saveTrainer *usecase.SaveTrainerUseCase,
	sales entity.SaleRepositoryInterface,
	v *view.Renderer,
	basePath string,
	log *slog.Logger,
) *SalesHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SalesHandler{
		Dashboard:   dashboard,
		SaveSale:    saveSale,
		SaveTrainer: saveTrainer,
		Sales:       sales,
		View:        v,
		BasePath:    basePath,
		Log:         log,
	}
}

func (h *SalesHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortField := q.Get("sort")
	if sortField == "" {
		sortField = "units_sold"
	}
	ascending := q.Get("dir") == "asc"

	d, err := h.Dashboard.Execute(r.Context(), sortField, ascending)
	if err != nil {
		h.Log.Error("sales dashboard fetch failed", "error", err)
		h.View.Render(w, http.StatusInternalServerError, "sales.html", view.Page{
			Title: "Sales",
			Error: failureMessage(err),
			Data:  view.SalesData{SortField: sortField, Ascending: ascending},
		})
		return
	}

	now := time.Now()
	rows := make([]view.SaleRow, len(d.Sales))
	for i, s := range d.Sales {
		days, ok := s.DaysUntilExpiry(now)
		rows[i] = view.SaleRow{
			Sale:         s,
			ExpiringSoon: ok && days <= 3 && s.Unsold() > 0,
		}
	}

	var editing *entity.Sale
	if editID := q.Get("edit"); editID != "" {
		for i := range d.Sales {
			if d.Sales[i].ID == editID {
				editing = &d.Sales[i]
				break
			}
		}
	}

	h.View.Render(w, http.StatusOK, "sales.html", view.Page{
		Title: "Sales",
		Flash: q.Get("flash"),
		Error: q.Get("error"),
		Data: view.SalesData{
			Rows:               rows,
			Trainers:           d.Trainers,
			Rankings:           d.Rankings,
			TotalUnitsSold:     d.TotalUnitsSold,
			TotalUnitsAssigned: d.TotalUnitsAssigned,
			TotalIncentives:    d.TotalIncentives,
			AvgMargin:          d.AvgMargin,
			ExpiringSoonCount:  len(d.ExpiringSoon),
			SortField:          sortField,
			Ascending:          ascending,
			Edit:               editing,
		},
	})
}

func (h *SalesHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, h.BasePath+"/sales", "error", "Invalid form submission.")
		return
	}

	input := usecase.SaleInput{
		ID:               r.PostFormValue("id"),
		TrainerID:        r.PostFormValue("trainer_id"),
		BuyerName:        r.PostFormValue("buyer_name"),
		BuyerContact:     r.PostFormValue("buyer_contact"),
		UnitsAssigned:    formInt(r, "units_assigned"),
		UnitsSold:        formInt(r, "units_sold"),
		MarginPercentage: formFloat(r, "margin_percentage"),
		IncentiveAmount:  formFloat(r, "incentive_amount"),
		ExpiryDate:       r.PostFormValue("expiry_date"),
	}

	if err := h.SaveSale.Execute(r.Context(), input); err != nil {
		h.Log.Error("save sale failed", "trainer_id", input.TrainerID, "error", err)
		redirectWith(w, r, h.BasePath+"/sales", "error", failureMessage(err))
		return
	}
	redirectWith(w, r, h.BasePath+"/sales", "flash", "Sale saved.")
}

func (h *SalesHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, h.BasePath+"/sales", "error", "Invalid form submission.")
		return
	}

	input := usecase.TrainerInput{
		Name:    r.PostFormValue("name"),
		Contact: r.PostFormValue("contact"),
		Notes:   r.PostFormValue("notes"),
	}
	if err := h.SaveTrainer.Execute(r.Context(), input); err != nil {
		h.Log.Error("create trainer failed", "error", err)
		redirectWith(w, r, h.BasePath+"/sales", "error", failureMessage(err))
		return
	}
	redirectWith(w, r, h.BasePath+"/sales", "flash", "Trainer added.")
}

func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, h.BasePath+"/sales", "error", "Invalid form submission.")
		return
	}

	id := r.PostFormValue("id")
	if id == "" {
		redirectWith(w, r, h.BasePath+"/sales", "error", "Missing sale id.")
		return
	}
	if err := h.Sales.Delete(r.Context(), id); err != nil {
		h.Log.Error("delete sale failed", "id", id, "error", err)
		redirectWith(w, r, h.BasePath+"/sales", "error", failureMessage(err))
		return
	}
	redirectWith(w, r, h.BasePath+"/sales", "flash", "Sale deleted.")
}

// Numeric form fields that fail to parse arrive as zero.

func formInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue(key)))
	return v
}

func formFloat(r *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue(key)), 64)
	return v
}
