// internal/service/sms_service.go
package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/payloop/propman-backend/internal/config"
	"github.com/payloop/propman-backend/internal/gateway"
	"github.com/payloop/propman-backend/internal/model"
	"github.com/payloop/propman-backend/internal/repository"
)

// SMSService composes and dispatches rent notifications. Every dispatch
// attempt writes exactly one SMS log row, sent or failed.
type SMSService struct {
	SMSLogRepo repository.SMSLogRepositoryInterface
	Gateway    gateway.Client
	Config     *config.Config
	Now        func() time.Time // overridable in tests, defaults to time.Now
}

func (s *SMSService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SendRentReminder sends a reminder that rent is due in daysBefore days
func (s *SMSService) SendRentReminder(tenant *model.Tenant, daysBefore int) bool {
	if tenant == nil {
		return false
	}
	message := s.buildRentReminderMessage(tenant, daysBefore)
	return s.sendSMS(tenant.FormattedPhone(), message, model.SMSRentReminder, tenant, &tenant.LandlordID)
}

// SendOverdueNotice sends an overdue notice to a tenant
func (s *SMSService) SendOverdueNotice(tenant *model.Tenant, daysOverdue int) bool {
	if tenant == nil {
		return false
	}
	message := s.buildOverdueNoticeMessage(tenant, daysOverdue)
	return s.sendSMS(tenant.FormattedPhone(), message, model.SMSOverdueNotice, tenant, &tenant.LandlordID)
}

// SendPaymentConfirmation acknowledges a received payment to the tenant
func (s *SMSService) SendPaymentConfirmation(tenant *model.Tenant, amount float64) bool {
	if tenant == nil {
		return false
	}
	message := s.buildPaymentConfirmationMessage(tenant, amount)
	return s.sendSMS(tenant.FormattedPhone(), message, model.SMSPaymentConfirmation, tenant, &tenant.LandlordID)
}

// SendWelcomeMessage sends the onboarding message to a new tenant
func (s *SMSService) SendWelcomeMessage(tenant *model.Tenant) bool {
	if tenant == nil {
		return false
	}
	message := s.buildWelcomeMessage(tenant)
	return s.sendSMS(tenant.FormattedPhone(), message, model.SMSWelcomeMessage, tenant, &tenant.LandlordID)
}

// NotifyLandlordOfPayment alerts the landlord that a tenant has paid
func (s *SMSService) NotifyLandlordOfPayment(tenant *model.Tenant, amount float64) bool {
	if tenant == nil {
		return false
	}
	message := s.buildLandlordPaymentAlert(tenant, amount)
	return s.sendSMS(model.FormatPhone(tenant.LandlordPhone), message, model.SMSPaymentConfirmation, tenant, &tenant.LandlordID)
}

// SendBulkRentReminders sends reminders to tenants in order, spacing sends
// by delay. Returns one result per tenant, in input order.
func (s *SMSService) SendBulkRentReminders(tenants []model.Tenant, daysBefore int, delay time.Duration) []bool {
	return FanOut(len(tenants), delay, func(i int) bool {
		return s.SendRentReminder(&tenants[i], daysBefore)
	})
}

// SendCustomSMS sends operator-supplied text verbatim. Tenant and landlord
// references are optional; a raw phone number is enough.
func (s *SMSService) SendCustomSMS(phone, message string, tenant *model.Tenant, landlordID *int) bool {
	return s.sendSMS(model.FormatPhone(phone), message, model.SMSCustom, tenant, landlordID)
}

// sendSMS is the single dispatch path: build a pending log entry, make one
// gateway call, resolve the outcome, append the log, report success.
func (s *SMSService) sendSMS(phone, message, smsType string, tenant *model.Tenant, landlordID *int) bool {
	smsLog := &model.SMSLog{
		RecipientPhone: phone,
		RecipientName:  "Unknown",
		Message:        message,
		SMSType:        smsType,
		Status:         model.SMSPending,
		LandlordID:     landlordID,
		SentAt:         s.now(),
	}
	if tenant != nil {
		smsLog.RecipientName = tenant.Name
		smsLog.TenantID = &tenant.ID
	}

	recipients, err := s.Gateway.Send(context.Background(), message, []string{phone}, s.Config.SenderName)

	switch {
	case err != nil:
		smsLog.Status = model.SMSFailed
		smsLog.ErrorMessage = err.Error()
		smsLog.Cost = 0
		log.Println("❌ SMS to", phone, "failed:", err)

	case len(recipients) == 0:
		smsLog.Status = model.SMSFailed
		smsLog.ErrorMessage = "no recipients returned from gateway"
		smsLog.Cost = 0
		log.Println("❌ SMS to", phone, "failed: gateway returned no recipients")

	case strings.EqualFold(recipients[0].Status, "Success"):
		smsLog.Status = model.SMSSent
		smsLog.MessageID = recipients[0].MessageID
		if cost, ok := parseCost(recipients[0].Cost); ok {
			smsLog.Cost = cost
		} else {
			smsLog.Cost = EstimateSMSCost(message)
		}
		log.Println("✅ SMS sent to", phone, "messageId:", recipients[0].MessageID)

	default:
		smsLog.Status = model.SMSFailed
		smsLog.ErrorMessage = recipients[0].Status
		smsLog.Cost = 0
		log.Println("❌ SMS to", phone, "rejected:", recipients[0].Status)
	}

	if err := s.SMSLogRepo.Create(smsLog); err != nil {
		// The send already happened; losing the audit row must not flip the
		// outcome, but it has to be visible in the process log.
		log.Println("⚠️ failed to save SMS log for", phone, ":", err)
	}

	return smsLog.Status == model.SMSSent
}

// parseCost extracts the numeric amount from a gateway cost string such as
// "KES 0.8000". Returns false when the string carries no usable number.
func parseCost(cost string) (float64, bool) {
	cost = strings.TrimSpace(cost)
	if cost == "" {
		return 0, false
	}
	fields := strings.Fields(cost)
	value, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
