// Package httpx maps the service error taxonomy onto HTTP responses.
package httpx

import (
	"errors"
	"net/http"

	"athena/internal/errs"
)

// Error writes err with the status code its taxonomy implies: 404 for
// unresolvable ids, 409 for lifecycle violations, 500 otherwise.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
