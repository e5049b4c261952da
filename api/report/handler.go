package report

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/evcharge/core/simulation"
	"github.com/kilianp07/evcharge/pkg/export"
)

// ResultSource returns the result of a finished run, or nil while the run
// is still in progress.
type ResultSource func() *simulation.Result

// NewHandler returns an HTTP handler exposing the run report via GET /api/report.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(src ResultSource, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		res := src()
		if res == nil {
			http.Error(w, "run in progress", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(export.NewReport(res)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
