// internal/service/compose.go
package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/payloop/propman-backend/internal/model"
)

// Message builders. These are total: missing tenant fields render as empty
// segments, never an error.

func (s *SMSService) buildRentReminderMessage(t *model.Tenant, daysBefore int) string {
	dueDate := s.now().AddDate(0, 0, daysBefore).Format("02/01/2006")

	return fmt.Sprintf(
		"Hi %s, your rent of KES %s for %s Unit %s is due on %s. "+
			"Pay via M-Pesa: Paybill %s or Send to %s. Thank you.",
		t.Name,
		FormatAmount(t.RentAmount),
		t.PropertyName,
		t.UnitNumber,
		dueDate,
		s.Config.MpesaPaybill,
		s.Config.MpesaPhone,
	)
}

func (s *SMSService) buildOverdueNoticeMessage(t *model.Tenant, daysOverdue int) string {
	return fmt.Sprintf(
		"Hi %s, your rent of KES %s for %s Unit %s is %d days overdue. "+
			"Please settle immediately to avoid penalties. Contact: %s",
		t.Name,
		FormatAmount(t.RentAmount),
		t.PropertyName,
		t.UnitNumber,
		daysOverdue,
		s.Config.MpesaPhone,
	)
}

func (s *SMSService) buildPaymentConfirmationMessage(t *model.Tenant, amount float64) string {
	return fmt.Sprintf(
		"Hi %s, we confirm receipt of KES %s rent payment for %s Unit %s. "+
			"Thank you for your prompt payment.",
		t.Name,
		FormatAmount(amount),
		t.PropertyName,
		t.UnitNumber,
	)
}

func (s *SMSService) buildWelcomeMessage(t *model.Tenant) string {
	return fmt.Sprintf(
		"Welcome to %s, %s! Your rent of KES %s is due on the %s of each month. "+
			"Pay via M-Pesa: Paybill %s or Send to %s. Contact us for any assistance.",
		t.PropertyName,
		t.Name,
		FormatAmount(t.RentAmount),
		OrdinalNumber(t.DueDay),
		s.Config.MpesaPaybill,
		s.Config.MpesaPhone,
	)
}

func (s *SMSService) buildLandlordPaymentAlert(t *model.Tenant, amount float64) string {
	return fmt.Sprintf(
		"Payment Alert: %s (Unit %s, %s) has paid KES %s. "+
			"Transaction recorded in your PropMan account.",
		t.Name,
		t.UnitNumber,
		t.PropertyName,
		FormatAmount(amount),
	)
}

// FormatAmount renders an amount with thousands separators and no decimal
// places, e.g. 30000 -> "30,000".
func FormatAmount(amount float64) string {
	n := int64(amount)
	if amount-float64(n) >= 0.5 {
		n++
	}

	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// OrdinalNumber renders a day of month as 1st, 2nd, 3rd, 4th, ...
// 11th-13th take "th" regardless of their last digit.
func OrdinalNumber(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// EstimateSMSCost estimates the cost of a message from its length when the
// gateway does not report one. Models per-segment billing: 160 chars per
// segment, up to three segments.
func EstimateSMSCost(message string) float64 {
	length := len(message)
	if length <= 160 {
		return 1.00
	} else if length <= 320 {
		return 2.00
	}
	return 3.00
}
