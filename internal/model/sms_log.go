// internal/model/sms_log.go
package model

import "time"

// SMS types
const (
	SMSRentReminder        = "rent_reminder"
	SMSOverdueNotice       = "overdue_notice"
	SMSPaymentConfirmation = "payment_confirmation"
	SMSWelcomeMessage      = "welcome_message"
	SMSCustom              = "custom"
)

// SMS statuses. "delivered" is reserved for delivery reports, which the
// gateway does not push to us yet; no code sets it.
const (
	SMSPending   = "pending"
	SMSSent      = "sent"
	SMSDelivered = "delivered"
	SMSFailed    = "failed"
)

// SMSLog is one delivery attempt. Rows are append-only: the dispatcher
// resolves the status before saving and nothing updates a row afterwards.
type SMSLog struct {
	ID             int       `db:"id" json:"id"`
	RecipientPhone string    `db:"recipient_phone" json:"recipient_phone"`
	RecipientName  string    `db:"recipient_name" json:"recipient_name"`
	Message        string    `db:"message" json:"message"`
	SMSType        string    `db:"sms_type" json:"sms_type"`
	Status         string    `db:"status" json:"status"`
	MessageID      string    `db:"message_id" json:"message_id,omitempty"` // gateway message ID
	Cost           float64   `db:"cost" json:"cost"`
	ErrorMessage   string    `db:"error_message" json:"error_message,omitempty"`
	TenantID       *int      `db:"tenant_id" json:"tenant_id,omitempty"`
	LandlordID     *int      `db:"landlord_id" json:"landlord_id,omitempty"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}
