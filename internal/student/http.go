package student

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"student-registry/internal/db"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/students", h.ListStudents)
	router.Post("/students", h.CreateStudent)
	router.Get("/students/{id}", h.GetStudent)
	router.Patch("/students/{id}", h.UpdateStudent)
	router.Delete("/students/{id}", h.DeleteStudent)
}

type listResponse struct {
	OK         bool     `json:"ok"`
	Items      []Record `json:"items"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
}

type studentResponse struct {
	OK      bool   `json:"ok"`
	Student Record `json:"student"`
}

type errorResponse struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fields  Fields `json:"fields,omitempty"`
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	params, err := ParseListParams(r.URL.Query())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "listing students", "page", params.Page, "limit", params.Limit)
	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listResponse{
		OK:         true,
		Items:      toRecords(page.Items),
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Invalid JSON body", nil)
		return
	}

	h.logger.InfoContext(r.Context(), "creating student")
	created, err := h.service.Create(r.Context(), &in)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, studentResponse{OK: true, Student: created.ToRecord()})
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"

	h.logger.InfoContext(r.Context(), "fetching student", "id", id)
	found, err := h.service.Get(r.Context(), id, includeDeleted)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, studentResponse{OK: true, Student: found.ToRecord()})
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Invalid JSON body", nil)
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	updated, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, studentResponse{OK: true, Student: updated.ToRecord()})
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, studentResponse{OK: true, Student: deleted.ToRecord()})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		h.logger.Info("validation failed", "message", vErr.Message)
		respondError(w, http.StatusBadRequest, "validation_error", vErr.Message, vErr.Fields)
		return
	}
	if errors.Is(err, ErrNotFound) {
		h.logger.Info("student not found")
		respondError(w, http.StatusNotFound, "not_found", "Student not found", nil)
		return
	}
	var dErr *DuplicateError
	if errors.As(err, &dErr) {
		h.logger.Info("duplicate field", "field", dErr.Field)
		respondError(w, http.StatusConflict, "duplicate", dErr.Error(), Fields{dErr.Field: "Already exists"})
		return
	}
	if errors.Is(err, db.ErrUnavailable) {
		h.logger.Error("database unavailable", "error", err)
		respondError(w, http.StatusInternalServerError, "db_error", "Database connection failed", nil)
		return
	}
	h.logger.Error("internal error", "error", err)
	respondError(w, http.StatusInternalServerError, "server_error", "Unexpected server error", nil)
}

func respondError(w http.ResponseWriter, code int, errCode, message string, fields Fields) {
	respondJSON(w, code, errorResponse{Error: errorBody{
		Code:    errCode,
		Message: message,
		Fields:  fields,
	}})
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
