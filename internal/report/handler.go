// internal/report/handler.go
package report

import (
	"encoding/json"
	"net/http"
	"time"

	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/httpx"
	"athena/internal/roster"
)

// Chart and list sizes the dashboard renders.
const (
	topCategories   = 6
	recentActivityN = 5
)

type Handler struct {
	catalog     catalog.Service
	roster      roster.Service
	circulation circulation.Service
}

func NewHandler(cat catalog.Service, ros roster.Service, circ circulation.Service) *Handler {
	return &Handler{catalog: cat, roster: ros, circulation: circ}
}

// HandleDashboard snapshots the three collections and returns the
// derived statistics. ListTransactions refreshes the overdue
// classification before the snapshot is taken.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := h.circulation.ListTransactions(ctx)
	if err != nil {
		httpx.Error(w, err)
		return
	}
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

	resp := struct {
		Overview       Overview                  `json:"overview"`
		Categories     []CategoryCount           `json:"categories"`
		RecentActivity []circulation.Transaction `json:"recent_activity"`
	}{
		Overview:       Summarize(books, students, transactions, time.Now()),
		Categories:     CategoryBreakdown(books, topCategories),
		RecentActivity: RecentActivity(transactions, recentActivityN),
	}

	json.NewEncoder(w).Encode(resp)
}
