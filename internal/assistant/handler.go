// internal/assistant/handler.go
package assistant

import (
	"encoding/json"
	"net/http"

	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/httpx"
	"athena/internal/roster"
)

type Handler struct {
	gateway     *Gateway
	catalog     catalog.Service
	roster      roster.Service
	circulation circulation.Service
}

func NewHandler(gateway *Gateway, cat catalog.Service, ros roster.Service, circ circulation.Service) *Handler {
	return &Handler{gateway: gateway, catalog: cat, roster: ros, circulation: circ}
}

// HandleAsk snapshots the collections and forwards the query. The reply
// is always 200 with text; provider failures are absorbed upstream.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	books, err := h.catalog.ListBooks(ctx)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	students, err := h.roster.ListStudents(ctx)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	transactions, err := h.circulation.ListTransactions(ctx)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	reply := h.gateway.Ask(ctx, req.Query, Snapshot{
		Books:        books,
		Students:     students,
		Transactions: transactions,
	})

	json.NewEncoder(w).Encode(struct {
		Reply string `json:"reply"`
	}{Reply: reply})
}
