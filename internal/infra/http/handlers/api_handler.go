package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// APIHandler serves the JSON endpoints the chart widgets consume.
type APIHandler struct {
	Views entity.ViewRepositoryInterface
	Log   *slog.Logger
}

func NewAPIHandler(views entity.ViewRepositoryInterface, log *slog.Logger) *APIHandler {
	if log == nil {
		log = slog.Default()
	}
	return &APIHandler{Views: views, Log: log}
}

func (h *APIHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rankings, err := h.Views.ListTrainerRankings(r.Context(), limit)
	if err != nil {
		h.Log.Error("rankings fetch failed", "error", err)
		writeErrorResponse(w, http.StatusBadGateway, "UPSTREAM_ERROR", "could not fetch trainer rankings")
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}

func (h *APIHandler) ExpiryAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Views.ListExpiryAlerts(r.Context())
	if err != nil {
		h.Log.Error("expiry alerts fetch failed", "error", err)
		writeErrorResponse(w, http.StatusBadGateway, "UPSTREAM_ERROR", "could not fetch expiry alerts")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
