package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"ads-scheduler/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a ScheduleUseCase to execute business logic, a validator
// for request DTOs and a logger for structured logging. Routes are
// registered on a chi.Router for convenient method handling.
type Handler struct {
	svc      port.ScheduleUseCase
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.ScheduleUseCase, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/schedules", h.handleCreateSchedules)
		r.Post("/schedules/auto", h.handleCreateAutoSchedules)
		r.Get("/schedules", h.handleListSchedules)
		r.Get("/schedules/conflicts", h.handleScheduleConflicts)
		r.Get("/schedules/dates", h.handleUpcomingDates)
		r.Delete("/schedules/{id}", h.handleDeleteSchedule)
		r.Post("/schedules/{id}/deactivate", h.handleDeactivateSchedule)
		r.Patch("/schedules/{id}/budget", h.handleUpdateBudget)
		r.Post("/schedules/{id}/run", h.handleRunNow)
		r.Get("/logs", h.handleListLogs)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeJSON encodes v with the proper content type. Encoding failures are
// logged; the status line has already been sent at that point.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps use-case errors onto HTTP statuses: validation errors are
// the caller's fault (400), unknown ids are 404, anything else is a 500
// whose underlying message is surfaced verbatim.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *port.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Reason})
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule not found"})
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
