// internal/roster/handler.go
package roster

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

// Routes mounts the roster endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleListStudents)
	r.Post("/", h.handleAddStudent)
	r.Get("/{id}", h.handleGetStudent)
	r.Delete("/{id}", h.handleDeleteStudent)
	return r
}

func (h *Handler) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Grade string `json:"grade"`
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	student, err := h.service.AddStudent(r.Context(), req.Name, req.Grade, req.Email)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(student)
}

func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	json.NewEncoder(w).Encode(students)
}

func (h *Handler) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid student ID", http.StatusBadRequest)
		return
	}

	student, err := h.service.GetStudent(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	json.NewEncoder(w).Encode(student)
}

func (h *Handler) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid student ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
