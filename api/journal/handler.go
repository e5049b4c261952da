package journal

import (
	"encoding/json"
	"net/http"

	corejournal "github.com/kilianp07/evcharge/core/journal"
)

// NewHandler returns an HTTP handler exposing journal records via GET /api/journal.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(store corejournal.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q := corejournal.Query{
			RunID: r.URL.Query().Get("run_id"),
			Plate: r.URL.Query().Get("plate"),
			Kind:  r.URL.Query().Get("kind"),
		}
		switch q.Kind {
		case "", corejournal.KindCharge, corejournal.KindArrival:
		default:
			http.Error(w, "unknown kind "+q.Kind, http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []corejournal.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
