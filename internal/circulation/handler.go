// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"athena/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the circulation endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/issue", h.handleIssue)
	r.Post("/return", h.handleReturn)
	r.Get("/transactions", h.handleListTransactions)
	return r
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID    uuid.UUID `json:"book_id"`
		StudentID uuid.UUID `json:"student_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txn, err := h.service.IssueBook(r.Context(), req.BookID, req.StudentID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(txn)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransactionID uuid.UUID `json:"transaction_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ReturnBook(r.Context(), req.TransactionID); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	json.NewEncoder(w).Encode(transactions)
}
