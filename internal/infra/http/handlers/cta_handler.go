package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/http/middleware"
	"github.com/sunnyops/sunny-admin/internal/infra/http/view"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type CTAHandler struct {
	Dashboard *usecase.GetExpiryDashboardUseCase
	Views     entity.ViewRepositoryInterface
	Mail      usecase.EmailService
	Recipient string
	View      *view.Renderer
	BasePath  string
	Log       *slog.Logger
}

func NewCTAHandler(
	dashboard *usecase.GetExpiryDashboardUseCase,
	views entity.ViewRepositoryInterface,
	mail usecase.EmailService,
	recipient string,
	v *view.Renderer,
	basePath string,
	log *slog.Logger,
) *CTAHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CTAHandler{
		Dashboard: dashboard,
		Views:     views,
		Mail:      mail,
		Recipient: recipient,
		View:      v,
		BasePath:  basePath,
		Log:       log,
	}
}

func (h *CTAHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := usecase.AlertFilters{
		TrainerID: q.Get("trainer_id"),
		Color:     q.Get("color"),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}

	d, err := h.Dashboard.Execute(r.Context(), filters)
	if err != nil {
		h.Log.Error("expiry dashboard fetch failed", "error", err)
		h.View.Render(w, http.StatusInternalServerError, "cta.html", view.Page{
			Title: "Expiry alerts",
			Error: failureMessage(err),
			Data:  view.CTAData{TrainerID: filters.TrainerID, Color: filters.Color},
		})
		return
	}

	rows := make([]view.AlertRow, len(d.Alerts))
	for i, a := range d.Alerts {
		rows[i] = view.AlertRow{
			ExpiryAlert: a,
			Color:       string(usecase.ClassifyExpiry(a.DaysUntilExpiry)),
		}
	}

	h.View.Render(w, http.StatusOK, "cta.html", view.Page{
		Title: "Expiry alerts",
		Flash: q.Get("flash"),
		Error: q.Get("error"),
		Data: view.CTAData{
			Rows:        rows,
			Trainers:    d.Trainers,
			Red:         d.Red,
			Yellow:      d.Yellow,
			Green:       d.Green,
			TotalUnsold: d.TotalUnsold,
			TrainerID:   filters.TrainerID,
			Color:       filters.Color,
			StartDate:   filters.StartDate,
			EndDate:     filters.EndDate,
			MailEnabled: h.Mail != nil && h.Recipient != "",
		},
	})
}

// SendDigest emails the currently critical alerts to the configured
// recipient. Runs inside the request, no queueing.
func (h *CTAHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	if h.Mail == nil || h.Recipient == "" {
		redirectWith(w, r, h.BasePath+"/cta", "error", "Email is not configured.")
		return
	}

	alerts, err := h.Views.ListExpiryAlerts(r.Context())
	if err != nil {
		h.Log.Error("digest alert fetch failed", "error", err)
		redirectWith(w, r, h.BasePath+"/cta", "error", failureMessage(err))
		return
	}

	critical := usecase.CriticalAlerts(alerts)
	if len(critical) == 0 {
		redirectWith(w, r, h.BasePath+"/cta", "flash", "No critical alerts to send.")
		return
	}

	if err := h.Mail.SendExpiryDigest(h.Recipient, critical); err != nil {
		middleware.RecordIntegrationError("smtp")
		h.Log.Error("digest send failed", "recipient", h.Recipient, "error", err)
		redirectWith(w, r, h.BasePath+"/cta", "error", "Could not send the digest email.")
		return
	}

	middleware.RecordDigestSent()
	h.Log.Info("expiry digest sent", "recipient", h.Recipient, "alerts", len(critical))
	redirectWith(w, r, h.BasePath+"/cta", "flash", "Digest emailed.")
}
