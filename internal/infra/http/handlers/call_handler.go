package handlers

import (
	"net/http"

	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type CallHandler struct {
	BasePath string
}

func NewCallHandler(basePath string) *CallHandler {
	return &CallHandler{BasePath: basePath}
}

// Handle turns a stored contact into a tel: redirect. An undialable
// value bounces back with a blocking alert.
func (h *CallHandler) Handle(w http.ResponseWriter, r *http.Request) {
	number := usecase.SanitizeContact(r.URL.Query().Get("number"))
	if number == "" {
		back := r.Referer()
		if back == "" {
			back = h.BasePath + "/sales"
		}
		redirectWith(w, r, back, "error", "No phone number on file for this contact.")
		return
	}
	http.Redirect(w, r, "tel:"+number, http.StatusFound)
}
