// internal/controller/sms_controller.go
package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/payloop/propman-backend/internal/config"
	"github.com/payloop/propman-backend/internal/model"
	"github.com/payloop/propman-backend/internal/repository"
	"github.com/payloop/propman-backend/internal/service"
)

type SMSController struct {
	SMSService   *service.SMSService
	TenantRepo   repository.TenantRepositoryInterface
	LandlordRepo repository.LandlordRepositoryInterface
	Config       *config.Config
}

// SMSResponse is the common reply shape for send endpoints
type SMSResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (c *SMSController) lookupTenant(w http.ResponseWriter, r *http.Request) *model.Tenant {
	idStr := chi.URLParam(r, "tenantId")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "invalid tenant id"})
		return nil
	}

	tenant, err := c.TenantRepo.GetByID(id)
	if err != nil || tenant == nil {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "Tenant not found"})
		return nil
	}
	return tenant
}

// SendRentReminder handles POST /sms/rent-reminder/{tenantId}?daysBefore=3
func (c *SMSController) SendRentReminder(w http.ResponseWriter, r *http.Request) {
	tenant := c.lookupTenant(w, r)
	if tenant == nil {
		return
	}

	daysBefore := 3
	if v := r.URL.Query().Get("daysBefore"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			daysBefore = n
		}
	}

	success := c.SMSService.SendRentReminder(tenant, daysBefore)

	message := "Rent reminder sent successfully"
	if !success {
		message = "Failed to send rent reminder"
	}
	writeJSON(w, http.StatusOK, SMSResponse{Success: success, Message: message})
}

// SendOverdueNotice handles POST /sms/overdue-notice/{tenantId}?daysOverdue=N
func (c *SMSController) SendOverdueNotice(w http.ResponseWriter, r *http.Request) {
	tenant := c.lookupTenant(w, r)
	if tenant == nil {
		return
	}

	daysOverdue, err := strconv.Atoi(r.URL.Query().Get("daysOverdue"))
	if err != nil || daysOverdue < 1 {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "daysOverdue must be a positive number"})
		return
	}

	success := c.SMSService.SendOverdueNotice(tenant, daysOverdue)

	message := "Overdue notice sent successfully"
	if !success {
		message = "Failed to send overdue notice"
	}
	writeJSON(w, http.StatusOK, SMSResponse{Success: success, Message: message})
}

// SendPaymentConfirmation handles POST /sms/payment-confirmation/{tenantId}?amount=N.
// The landlord gets a payment alert alongside the tenant's confirmation.
func (c *SMSController) SendPaymentConfirmation(w http.ResponseWriter, r *http.Request) {
	tenant := c.lookupTenant(w, r)
	if tenant == nil {
		return
	}

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "amount must be a positive number"})
		return
	}

	success := c.SMSService.SendPaymentConfirmation(tenant, amount)

	if !c.SMSService.NotifyLandlordOfPayment(tenant, amount) {
		log.Println("⚠️ failed to notify landlord", tenant.LandlordID, "of payment from tenant", tenant.ID)
	}

	message := "Payment confirmation sent successfully"
	if !success {
		message = "Failed to send payment confirmation"
	}
	writeJSON(w, http.StatusOK, SMSResponse{Success: success, Message: message})
}

// SendWelcomeMessage handles POST /sms/welcome/{tenantId}
func (c *SMSController) SendWelcomeMessage(w http.ResponseWriter, r *http.Request) {
	tenant := c.lookupTenant(w, r)
	if tenant == nil {
		return
	}

	success := c.SMSService.SendWelcomeMessage(tenant)

	message := "Welcome message sent successfully"
	if !success {
		message = "Failed to send welcome message"
	}
	writeJSON(w, http.StatusOK, SMSResponse{Success: success, Message: message})
}

// SendBulkRentReminders handles POST /sms/bulk-rent-reminders
func (c *SMSController) SendBulkRentReminders(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TenantIDs  []int `json:"tenant_ids"`
		DaysBefore int   `json:"days_before"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "invalid body"})
		return
	}
	if len(body.TenantIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "tenant_ids cannot be empty"})
		return
	}
	daysBefore := body.DaysBefore
	if daysBefore < 1 || daysBefore > 30 {
		daysBefore = 3
	}

	tenants, err := c.TenantRepo.ListByIDs(body.TenantIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, SMSResponse{Success: false, Message: "failed to load tenants: " + err.Error()})
		return
	}
	if len(tenants) == 0 {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "No valid tenants found"})
		return
	}

	results := c.SMSService.SendBulkRentReminders(tenants, daysBefore, c.Config.BulkSendDelay)
	successCount := service.CountSuccess(results)

	writeJSON(w, http.StatusOK, SMSResponse{
		Success: true,
		Message: fmt.Sprintf("Sent %d out of %d rent reminders successfully", successCount, len(results)),
		Data:    fmt.Sprintf("Success rate: %.1f%%", service.SuccessRate(results)),
	})
}

// SendCustomSMS handles POST /sms/custom
func (c *SMSController) SendCustomSMS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone      string `json:"phone"`
		Message    string `json:"message"`
		TenantID   *int   `json:"tenant_id"`
		LandlordID *int   `json:"landlord_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "invalid body"})
		return
	}
	if !ValidKenyanPhone(body.Phone) {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "Invalid Kenyan phone number format"})
		return
	}
	if body.Message == "" || len(body.Message) > 1000 {
		writeJSON(w, http.StatusBadRequest, SMSResponse{Success: false, Message: "Message must be between 1 and 1000 characters"})
		return
	}

	// Back-references are optional; a stale ID just means no reference.
	var tenant *model.Tenant
	if body.TenantID != nil {
		tenant, _ = c.TenantRepo.GetByID(*body.TenantID)
	}
	landlordID := body.LandlordID
	if landlordID != nil {
		if _, err := c.LandlordRepo.GetByID(*landlordID); err != nil {
			landlordID = nil
		}
	}

	success := c.SMSService.SendCustomSMS(body.Phone, body.Message, tenant, landlordID)

	message := "Custom SMS sent successfully"
	if !success {
		message = "Failed to send custom SMS"
	}
	writeJSON(w, http.StatusOK, SMSResponse{Success: success, Message: message})
}
