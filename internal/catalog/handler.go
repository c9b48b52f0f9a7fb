// internal/catalog/handler.go
package catalog

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

// Routes mounts the catalog endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleListBooks)
	r.Post("/", h.handleAddBook)
	r.Get("/{id}", h.handleGetBook)
	r.Delete("/{id}", h.handleDeleteBook)
	return r
}

func (h *Handler) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		ISBN        string `json:"isbn"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Author == "" {
		http.Error(w, "title and author are required", http.StatusBadRequest)
		return
	}

	book, err := h.service.AddBook(r.Context(), req.Title, req.Author, req.ISBN, req.Category, req.Description)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	json.NewEncoder(w).Encode(books)
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid book ID", http.StatusBadRequest)
		return
	}

	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	json.NewEncoder(w).Encode(book)
}

func (h *Handler) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
