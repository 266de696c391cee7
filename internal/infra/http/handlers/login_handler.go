package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sunnyops/sunny-admin/internal/infra/http/middleware"
	"github.com/sunnyops/sunny-admin/internal/infra/http/view"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type LoginHandler struct {
	Sessions   *usecase.SessionCoordinator
	View       *view.Renderer
	Configured bool
	BasePath   string
	Log        *slog.Logger
}

func NewLoginHandler(sessions *usecase.SessionCoordinator, v *view.Renderer, configured bool, basePath string, log *slog.Logger) *LoginHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LoginHandler{
		Sessions:   sessions,
		View:       v,
		Configured: configured,
		BasePath:   basePath,
		Log:        log,
	}
}

func (h *LoginHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	// An already signed-in admin has nothing to do here.
	state := h.Sessions.State()
	if state.User != nil && state.IsAdmin {
		http.Redirect(w, r, h.BasePath+"/sales", http.StatusSeeOther)
		return
	}

	h.View.Render(w, http.StatusOK, "login.html", view.Page{
		Title: "Sign in",
		Error: r.URL.Query().Get("error"),
		Data: view.LoginData{
			Configured: h.Configured,
			From:       r.URL.Query().Get("from"),
		},
	})
}

func (h *LoginHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, h.BasePath+"/login", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	from := r.PostFormValue("from")

	if !h.Configured {
		h.renderError(w, email, from, "Backend not configured. Set SUPABASE_URL and SUPABASE_ANON_KEY.")
		return
	}
	if email == "" || password == "" {
		h.renderError(w, email, from, "Please enter email and password.")
		return
	}

	res := h.Sessions.SignIn(r.Context(), email, password)
	if res.Err != nil {
		middleware.RecordSignInAttempt("failure")
		h.Log.Warn("sign in failed", "email", email, "error", res.Err)
		h.renderError(w, email, from, "Sign in failed: "+res.Err.Error())
		return
	}

	middleware.RecordSignInAttempt("success")
	h.Log.Info("sign in", "email", email)

	target := h.BasePath + "/sales"
	if from != "" && strings.HasPrefix(from, h.BasePath+"/") {
		target = from
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(r.Context()); err != nil {
		h.Log.Warn("sign out failed", "error", err)
	}
	http.Redirect(w, r, h.BasePath+"/login", http.StatusSeeOther)
}

// Visibility receives the frontend's tab-visibility heartbeat.
func (h *LoginHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.Sessions.SetVisible(r.PostFormValue("hidden") != "true")
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoginHandler) renderError(w http.ResponseWriter, email, from, message string) {
	h.View.Render(w, http.StatusOK, "login.html", view.Page{
		Title: "Sign in",
		Error: message,
		Data: view.LoginData{
			Configured: h.Configured,
			From:       from,
			Email:      email,
		},
	})
}
