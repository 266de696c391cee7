package handlers

import (
	"net/http"
	"net/url"

	"github.com/sunnyops/sunny-admin/internal/usecase"
)

// redirectWith sends the browser to target carrying one message in a
// query parameter, the post-redirect-get flavor of a blocking alert.
func redirectWith(w http.ResponseWriter, r *http.Request, target, key, message string) {
	u, err := url.Parse(target)
	if err != nil {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	q := u.Query()
	q.Set(key, message)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// failureMessage turns an error into operator-facing text. Domain
// errors are shown verbatim; plumbing failures get a generic line and
// their detail stays in the logs.
func failureMessage(err error) string {
	if usecase.IsDomainError(err) {
		return err.Error()
	}
	return "Something went wrong talking to the data service. Please try again."
}
