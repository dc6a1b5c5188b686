package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"ads-scheduler/internal/core/domain"
)

type logResponse struct {
	ID           int64  `json:"id"`
	CampaignID   int64  `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	NewBudget    int64  `json:"new_budget"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	ExecutedAt   string `json:"executed_at"`
}

func toLogResponse(l *domain.BudgetLog) logResponse {
	out := logResponse{
		ID:           l.ID,
		CampaignID:   l.CampaignID,
		CampaignName: l.CampaignName,
		NewBudget:    l.NewBudget,
		Status:       string(l.Status),
		ExecutedAt:   l.ExecutedAt.Format(time.RFC3339),
	}
	if l.ErrorMessage != nil {
		out.ErrorMessage = *l.ErrorMessage
	}
	return out
}

// handleListLogs returns a page of the shop's execution records, newest
// first. Optional limit and offset query parameters page through history;
// the limit defaults to 50.
func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shopID, err := strconv.ParseInt(q.Get("shop_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid shop_id", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	logs, err := h.svc.ListLogs(r.Context(), shopID, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]logResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toLogResponse(&logs[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}
