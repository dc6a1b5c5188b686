package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"ads-scheduler/internal/core/domain"
)

// handleScheduleConflicts lists the half-hour slots already covered by a
// campaign's active schedules, so the dashboard can highlight them. The
// check is advisory; creating an overlapping schedule is still allowed.
func (h *Handler) handleScheduleConflicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shopID, err := strconv.ParseInt(q.Get("shop_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid shop_id", http.StatusBadRequest)
		return
	}
	campaignID, err := strconv.ParseInt(q.Get("campaign_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign_id", http.StatusBadRequest)
		return
	}
	slots, err := h.svc.OccupiedSlots(r.Context(), shopID, campaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"occupied": slots})
}

// handleUpcomingDates returns the next 14 calendar days, today inclusive,
// with weekday labels. The dates follow the server's local clock.
func (h *Handler) handleUpcomingDates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, domain.UpcomingDates(time.Now(), 14))
}
