// internal/handler/sms_log_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/payloop/propman-backend/internal/repository"
)

// SMSLogHandler serves the read side of the SMS delivery log
type SMSLogHandler struct {
	Repo repository.SMSLogRepositoryInterface
}

var sortByParam = map[string]string{
	"sentAt": "sent_at",
	"cost":   "cost",
	"status": "status",
}

// GetSMSLogs returns a paginated, filterable listing of delivery attempts.
// GET /sms/logs?page=0&size=20&sortBy=sentAt&sortDir=desc&landlordId=&smsType=&status=
func (h *SMSLogHandler) GetSMSLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 0
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	size := 20
	if s, err := strconv.Atoi(q.Get("size")); err == nil && s > 0 && s <= 100 {
		size = s
	}

	filter := repository.SMSLogFilter{
		SMSType: q.Get("smsType"),
		Status:  q.Get("status"),
		SortBy:  sortByParam[q.Get("sortBy")],
		SortDir: q.Get("sortDir"),
		Offset:  page * size,
		Limit:   size,
	}
	if v := q.Get("landlordId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid landlordId", http.StatusBadRequest)
			return
		}
		filter.LandlordID = &id
	}

	logs, total, err := h.Repo.List(filter)
	if err != nil {
		http.Error(w, "failed to fetch SMS logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + size - 1) / size
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": logs,
		"pagination": map[string]int{
			"page":        page,
			"size":        size,
			"total_count": total,
			"total_pages": totalPages,
		},
	})
}

// GetSMSStats returns sent count and total SMS spend for a landlord.
// GET /sms/stats/{landlordId}?days=30
func (h *SMSLogHandler) GetSMSStats(w http.ResponseWriter, r *http.Request) {
	landlordID, err := strconv.Atoi(chi.URLParam(r, "landlordId"))
	if err != nil {
		http.Error(w, "invalid landlord id", http.StatusBadRequest)
		return
	}

	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}
	since := time.Now().AddDate(0, 0, -days)

	sentCount, err := h.Repo.CountSentByLandlordSince(landlordID, since)
	if err != nil {
		http.Error(w, "failed to fetch SMS stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	totalCost, err := h.Repo.TotalCostByLandlordSince(landlordID, since)
	if err != nil {
		http.Error(w, "failed to fetch SMS stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"landlord_id": landlordID,
		"period_days": days,
		"sent_count":  sentCount,
		"total_cost":  totalCost,
	})
}
