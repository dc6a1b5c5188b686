package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
)

// createSchedulesRequest is the bulk-budget dialog payload. Dates are only
// consulted when daily is false.
type createSchedulesRequest struct {
	ShopID      int64    `json:"shop_id" validate:"required"`
	CampaignIDs []int64  `json:"campaign_ids" validate:"required,min=1"`
	Slots       []string `json:"slots" validate:"required,min=1"`
	Daily       bool     `json:"daily"`
	Dates       []string `json:"dates" validate:"omitempty,dive,datetime=2006-01-02"`
	Budget      string   `json:"budget" validate:"required"`
}

func (req *createSchedulesRequest) params() port.BulkScheduleParams {
	return port.BulkScheduleParams{
		ShopID:      req.ShopID,
		CampaignIDs: req.CampaignIDs,
		Slots:       req.Slots,
		Daily:       req.Daily,
		Dates:       req.Dates,
		BudgetInput: req.Budget,
	}
}

// scheduleResponse is the row shape returned to the dashboard.
type scheduleResponse struct {
	ID            string   `json:"id"`
	ShopID        int64    `json:"shop_id"`
	CampaignID    int64    `json:"campaign_id"`
	CampaignName  string   `json:"campaign_name"`
	AdType        string   `json:"ad_type"`
	HourStart     int      `json:"hour_start"`
	MinuteStart   int      `json:"minute_start"`
	HourEnd       int      `json:"hour_end"`
	MinuteEnd     int      `json:"minute_end"`
	DaysOfWeek    []int    `json:"days_of_week,omitempty"`
	SpecificDates []string `json:"specific_dates,omitempty"`
	Budget        int64    `json:"budget"`
	Recurrence    string   `json:"recurrence"`
	CreatedAt     string   `json:"created_at"`
}

func toScheduleResponse(s *domain.BudgetSchedule) scheduleResponse {
	return scheduleResponse{
		ID:            s.ID.String(),
		ShopID:        s.ShopID,
		CampaignID:    s.CampaignID,
		CampaignName:  s.CampaignName,
		AdType:        s.AdType,
		HourStart:     s.HourStart,
		MinuteStart:   s.MinuteStart,
		HourEnd:       s.HourEnd,
		MinuteEnd:     s.MinuteEnd,
		DaysOfWeek:    s.DaysOfWeek,
		SpecificDates: s.SpecificDates,
		Budget:        s.Budget,
		Recurrence:    domain.DescribeRecurrence(s, 3),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}

// handleCreateSchedules creates one schedule per selected campaign in a
// single batch. It returns 201 with the created count, or 400 when the
// selection fails validation.
func (h *Handler) handleCreateSchedules(w http.ResponseWriter, r *http.Request) {
	var req createSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.svc.CreateSchedules(r.Context(), req.params())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int{"created": created})
}

// handleCreateAutoSchedules runs the campaign-by-campaign variant and
// reports partial completion.
func (h *Handler) handleCreateAutoSchedules(w http.ResponseWriter, r *http.Request) {
	var req createSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.svc.CreateAutoSchedules(r.Context(), req.params())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// handleListSchedules returns the shop's active schedules, newest first.
func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(r.URL.Query().Get("shop_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid shop_id", http.StatusBadRequest)
		return
	}
	schedules, err := h.svc.ListSchedules(r.Context(), shopID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]scheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, toScheduleResponse(&schedules[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func scheduleID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// handleDeleteSchedule removes a schedule permanently.
func (h *Handler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := scheduleID(r)
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteSchedule(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeactivateSchedule soft-removes a schedule.
func (h *Handler) handleDeactivateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := scheduleID(r)
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeactivateSchedule(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateBudgetRequest struct {
	Budget string `json:"budget" validate:"required"`
}

// handleUpdateBudget edits the budget value of an existing schedule.
func (h *Handler) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := scheduleID(r)
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.svc.UpdateScheduleBudget(r.Context(), id, req.Budget); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRunNow applies a schedule immediately and returns the recorded
// outcome.
func (h *Handler) handleRunNow(w http.ResponseWriter, r *http.Request) {
	id, err := scheduleID(r)
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}
	log, err := h.svc.RunNow(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLogResponse(log))
}
