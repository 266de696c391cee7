package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sunnyops/sunny-admin/internal/usecase"
)

// SessionReader is the slice of the session coordinator the guard needs.
type SessionReader interface {
	State() usecase.SessionState
}

// GuardScreens renders the intermediate states the guard can land on.
type GuardScreens interface {
	Loading(w http.ResponseWriter)
	MissingProfile(w http.ResponseWriter, email string)
	AccessDenied(w http.ResponseWriter, email, role string)
}

// Guard protects the dashboard pages. Checks run in a fixed order:
// unconfigured backend, session still resolving, no user, user without
// a profile row, non-admin role. Only a signed-in admin reaches the
// wrapped handler. The guard itself never makes network calls.
func Guard(sessions SessionReader, screens GuardScreens, configured bool, basePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !configured {
				http.Redirect(w, r, basePath+"/login", http.StatusSeeOther)
				return
			}

			state := sessions.State()

			if state.Loading {
				screens.Loading(w)
				return
			}

			if state.User == nil {
				http.Redirect(w, r, basePath+"/login?from="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			if state.Profile == nil {
				// Fail open with a diagnostic rather than bouncing to
				// login: the session is valid, only the role row is
				// missing, and a reload can recover from a timeout.
				screens.MissingProfile(w, state.User.Email)
				return
			}

			if !state.IsAdmin {
				screens.AccessDenied(w, state.User.Email, state.Profile.Role)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// APIGuard protects the JSON endpoints. The chart widgets run in the
// signed-in operator's browser, so anything else gets a 401 envelope
// instead of a login redirect. Without this, direct-Postgres mode
// would serve the views unauthenticated.
func APIGuard(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessions.State()
			if state.User == nil || !state.IsAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "UNAUTHENTICATED",
					"message": "an admin session is required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
