package alerts

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blip-cmd/xpense/internal/alert"
)

type Handler struct {
	center *alert.Center
}

func NewHandler(center *alert.Center) *Handler {
	return &Handler{center: center}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/next", h.next)
	r.Post("/drain", h.drain)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		HasAlerts bool `json:"has_alerts"`
		Pending   int  `json:"pending"`
	}{
		HasAlerts: h.center.HasAlerts(),
		Pending:   h.center.Pending(),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// next consumes and returns the most urgent alert, or 204 when none pending.
func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	a, ok := h.center.Next()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// drain consumes every pending alert in priority order.
func (h *Handler) drain(w http.ResponseWriter, r *http.Request) {
	drained := h.center.DrainAll()

	resp := make([]alertResponse, len(drained))
	for i, a := range drained {
		resp[i] = toResponse(a)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type alertResponse struct {
	Message   string    `json:"message"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(a alert.Alert) alertResponse {
	return alertResponse{Message: a.Message, Priority: a.Priority, CreatedAt: a.CreatedAt}
}
