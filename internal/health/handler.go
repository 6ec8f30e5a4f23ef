package health

import (
	"encoding/json"
	"net/http"

	"student-registry/internal/db"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	session *db.Session
}

func NewHandler(session *db.Session) *Handler {
	return &Handler{session: session}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready verifies the shared database session is reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	bdb, err := h.session.DB(r.Context())
	if err != nil {
		respond(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	if err := bdb.PingContext(r.Context()); err != nil {
		respond(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	respond(w, http.StatusOK, HealthResponse{Status: "ready"})
}

func respond(w http.ResponseWriter, code int, payload HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
