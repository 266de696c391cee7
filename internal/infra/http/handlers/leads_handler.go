package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/http/view"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type LeadsHandler struct {
	Dashboard *usecase.GetLeadsDashboardUseCase
	SaveLead  *usecase.SaveLeadUseCase
	Leads     entity.LeadRepositoryInterface
	View      *view.Renderer
	BasePath  string
	Log       *slog.Logger
}

func NewLeadsHandler(
	dashboard *usecase.GetLeadsDashboardUseCase,
	saveLead *usecase.SaveLeadUseCase,
	leads entity.LeadRepositoryInterface,
	v *view.Renderer,
	basePath string,
	log *slog.Logger,
) *LeadsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LeadsHandler{
		Dashboard: dashboard,
		SaveLead:  saveLead,
		Leads:     leads,
		View:      v,
		BasePath:  basePath,
		Log:       log,
	}
}

func (h *LeadsHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := usecase.LeadFilters{
		Status:    q.Get("status"),
		TrainerID: q.Get("trainer_id"),
		Search:    q.Get("q"),
	}

	d, err := h.Dashboard.Execute(r.Context(), filters)
	if err != nil {
		h.Log.Error("leads dashboard fetch failed", "error", err)
		h.View.Render(w, http.StatusInternalServerError, "leads.html", view.Page{
			Title: "Leads",
			Error: failureMessage(err),
			Data:  view.LeadsData{Status: filters.Status, TrainerID: filters.TrainerID, Search: filters.Search},
		})
		return
	}

	h.View.Render(w, http.StatusOK, "leads.html", view.Page{
		Title: "Leads",
		Flash: q.Get("flash"),
		Error: q.Get("error"),
		Data: view.LeadsData{
			Leads:          d.Leads,
			Trainers:       d.Trainers,
			Total:          d.Total,
			New:            d.New,
			Converted:      d.Converted,
			Lost:           d.Lost,
			ConversionRate: d.ConversionRate,
			Status:         filters.Status,
			TrainerID:      filters.TrainerID,
			Search:         filters.Search,
		},
	})
}

func (h *LeadsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, h.BasePath+"/leads", "error", "Invalid form submission.")
		return
	}

	input := usecase.LeadInput{
		ID:             r.PostFormValue("id"),
		TrainerID:      r.PostFormValue("trainer_id"),
		TrainerContact: r.PostFormValue("trainer_contact"),
		BuyerName:      r.PostFormValue("buyer_name"),
		BuyerContact:   r.PostFormValue("buyer_contact"),
		Status:         r.PostFormValue("status"),
	}
	if err := h.SaveLead.Execute(r.Context(), input); err != nil {
		h.Log.Error("save lead failed", "trainer_id", input.TrainerID, "error", err)
		redirectWith(w, r, h.BasePath+"/leads", "error", failureMessage(err))
		return
	}
	redirectWith(w, r, h.BasePath+"/leads", "flash", "Lead saved.")
}

func (h *LeadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, h.BasePath+"/leads", "error", "Invalid form submission.")
		return
	}

	id := r.PostFormValue("id")
	if id == "" {
		redirectWith(w, r, h.BasePath+"/leads", "error", "Missing lead id.")
		return
	}
	if err := h.Leads.Delete(r.Context(), id); err != nil {
		h.Log.Error("delete lead failed", "id", id, "error", err)
		redirectWith(w, r, h.BasePath+"/leads", "error", failureMessage(err))
		return
	}
	redirectWith(w, r, h.BasePath+"/leads", "flash", "Lead deleted.")
}
