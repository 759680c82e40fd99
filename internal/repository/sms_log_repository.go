package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/payloop/propman-backend/internal/model"
)

// SMSLogRepositoryInterface defines methods used by the SMS service and handlers
type SMSLogRepositoryInterface interface {
	Create(smsLog *model.SMSLog) error
	List(filter SMSLogFilter) ([]model.SMSLog, int, error)
	CountSentByLandlordSince(landlordID int, since time.Time) (int, error)
	TotalCostByLandlordSince(landlordID int, since time.Time) (float64, error)
}

// SMSLogFilter narrows and pages the log listing
type SMSLogFilter struct {
	LandlordID *int
	SMSType    string
	Status     string
	SortBy     string // sent_at, cost, status
	SortDir    string // asc or desc
	Offset     int
	Limit      int
}

// SMSLogRepository is the concrete implementation
type SMSLogRepository struct {
	DB *sql.DB
}

// Create appends one delivery attempt. Each call is a single independent
// insert, so concurrent jobs can log without coordination.
func (r *SMSLogRepository) Create(smsLog *model.SMSLog) error {
	if smsLog.SentAt.IsZero() {
		smsLog.SentAt = time.Now()
	}
	query := `
        INSERT INTO sms_logs
        (recipient_phone, recipient_name, message, sms_type, status, message_id, cost, error_message, tenant_id, landlord_id, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		smsLog.RecipientPhone,
		smsLog.RecipientName,
		smsLog.Message,
		smsLog.SMSType,
		smsLog.Status,
		smsLog.MessageID,
		smsLog.Cost,
		smsLog.ErrorMessage,
		smsLog.TenantID,
		smsLog.LandlordID,
		smsLog.SentAt,
	).Scan(&smsLog.ID)
}

var sortColumns = map[string]string{
	"sent_at": "sent_at",
	"cost":    "cost",
	"status":  "status",
}

// List returns a page of SMS logs matching the filter plus the total count
func (r *SMSLogRepository) List(filter SMSLogFilter) ([]model.SMSLog, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	arg := 1

	if filter.LandlordID != nil {
		where += fmt.Sprintf(" AND landlord_id = $%d", arg)
		args = append(args, *filter.LandlordID)
		arg++
	}
	if filter.SMSType != "" {
		where += fmt.Sprintf(" AND sms_type = $%d", arg)
		args = append(args, filter.SMSType)
		arg++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", arg)
		args = append(args, filter.Status)
		arg++
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM sms_logs "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "sent_at"
	}
	sortDir := "DESC"
	if filter.SortDir == "asc" {
		sortDir = "ASC"
	}

	query := fmt.Sprintf(`
        SELECT id, recipient_phone, recipient_name, message, sms_type, status, message_id, cost, error_message, tenant_id, landlord_id, sent_at
        FROM sms_logs %s
        ORDER BY %s %s
        LIMIT $%d OFFSET $%d
    `, where, sortBy, sortDir, arg, arg+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := []model.SMSLog{}
	for rows.Next() {
		var l model.SMSLog
		var messageID, errorMessage sql.NullString
		if err := rows.Scan(
			&l.ID, &l.RecipientPhone, &l.RecipientName, &l.Message, &l.SMSType,
			&l.Status, &messageID, &l.Cost, &errorMessage, &l.TenantID, &l.LandlordID, &l.SentAt,
		); err != nil {
			return nil, 0, err
		}
		l.MessageID = messageID.String
		l.ErrorMessage = errorMessage.String
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}

// CountSentByLandlordSince counts successfully sent messages for a landlord
func (r *SMSLogRepository) CountSentByLandlordSince(landlordID int, since time.Time) (int, error) {
	query := `
        SELECT COUNT(*) FROM sms_logs
        WHERE landlord_id = $1 AND status = $2 AND sent_at >= $3
    `
	var count int
	err := r.DB.QueryRow(query, landlordID, model.SMSSent, since).Scan(&count)
	return count, err
}

// TotalCostByLandlordSince sums SMS cost for a landlord's sent messages
func (r *SMSLogRepository) TotalCostByLandlordSince(landlordID int, since time.Time) (float64, error) {
	query := `
        SELECT COALESCE(SUM(cost), 0) FROM sms_logs
        WHERE landlord_id = $1 AND status = $2 AND sent_at >= $3
    `
	var total float64
	err := r.DB.QueryRow(query, landlordID, model.SMSSent, since).Scan(&total)
	return total, err
}
