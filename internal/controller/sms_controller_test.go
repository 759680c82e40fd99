package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payloop/propman-backend/internal/config"
	"github.com/payloop/propman-backend/internal/controller"
	appErrors "github.com/payloop/propman-backend/internal/errors"
	"github.com/payloop/propman-backend/internal/gateway"
	"github.com/payloop/propman-backend/internal/model"
	"github.com/payloop/propman-backend/internal/repository"
	"github.com/payloop/propman-backend/internal/service"
)

// --- Mock repositories ---

type mockTenantRepo struct {
	tenants map[int]*model.Tenant
}

func (m *mockTenantRepo) GetByID(id int) (*model.Tenant, error) {
	if t, ok := m.tenants[id]; ok {
		return t, nil
	}
	return nil, appErrors.NewTenantNotFound(id)
}

func (m *mockTenantRepo) ListByIDs(ids []int) ([]model.Tenant, error) {
	out := []model.Tenant{}
	for _, id := range ids {
		if t, ok := m.tenants[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTenantRepo) FindActiveDueOn(day int) ([]model.Tenant, error)     { return nil, nil }
func (m *mockTenantRepo) FindDefaultersDueOn(day int) ([]model.Tenant, error) { return nil, nil }
func (m *mockTenantRepo) FindDefaultersDueOnOrBefore(day int) ([]model.Tenant, error) {
	return nil, nil
}

type mockLandlordRepo struct{}

func (m *mockLandlordRepo) GetByID(id int) (*model.Landlord, error) {
	if id == 7 {
		return &model.Landlord{ID: 7, Name: "James Mwangi", Phone: "0722000001"}, nil
	}
	return nil, appErrors.NewLandlordNotFound(id)
}

type mockLogRepo struct {
	logs []model.SMSLog
}

func (m *mockLogRepo) Create(l *model.SMSLog) error {
	m.logs = append(m.logs, *l)
	return nil
}
func (m *mockLogRepo) List(repository.SMSLogFilter) ([]model.SMSLog, int, error) { return nil, 0, nil }
func (m *mockLogRepo) CountSentByLandlordSince(int, time.Time) (int, error)      { return 0, nil }
func (m *mockLogRepo) TotalCostByLandlordSince(int, time.Time) (float64, error)  { return 0, nil }

// rejectOddGateway fails every second call, for bulk partial-failure tests.
type rejectOddGateway struct {
	calls int
}

func (g *rejectOddGateway) Send(_ context.Context, _ string, _ []string, _ string) ([]gateway.Recipient, error) {
	g.calls++
	if g.calls%2 == 0 {
		return []gateway.Recipient{{Status: "Failed"}}, nil
	}
	return []gateway.Recipient{{Status: "Success", MessageID: "X"}}, nil
}

func sampleTenant(id int) *model.Tenant {
	return &model.Tenant{
		ID:            id,
		Name:          "Alice Njeri",
		Phone:         "0712345678",
		RentAmount:    30000,
		DueDay:        5,
		UnitNumber:    "A1",
		Status:        model.TenantActive,
		PropertyName:  "Sunrise Apartments",
		LandlordID:    7,
		LandlordPhone: "0722000001",
	}
}

func newController(gw gateway.Client, logs *mockLogRepo, tenants map[int]*model.Tenant) *controller.SMSController {
	cfg := &config.Config{
		SenderName:   "PropMan",
		MpesaPaybill: "696385",
		MpesaPhone:   "0705441549",
	}
	return &controller.SMSController{
		SMSService: &service.SMSService{
			SMSLogRepo: logs,
			Gateway:    gw,
			Config:     cfg,
		},
		TenantRepo:   &mockTenantRepo{tenants: tenants},
		LandlordRepo: &mockLandlordRepo{},
		Config:       cfg,
	}
}

func newRouter(c *controller.SMSController) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/sms/rent-reminder/{tenantId}", c.SendRentReminder)
	r.Post("/sms/bulk-rent-reminders", c.SendBulkRentReminders)
	r.Post("/sms/custom", c.SendCustomSMS)
	return r
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) controller.SMSResponse {
	t.Helper()
	var res controller.SMSResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	return res
}

// --- Tests ---

func TestSendRentReminderEndpoint(t *testing.T) {
	sandbox := &gateway.SandboxClient{}
	logs := &mockLogRepo{}
	c := newController(sandbox, logs, map[int]*model.Tenant{1: sampleTenant(1)})

	req := httptest.NewRequest("POST", "/sms/rent-reminder/1", nil)
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.True(t, res.Success)
	assert.Equal(t, "Rent reminder sent successfully", res.Message)
	assert.Len(t, logs.logs, 1)
}

func TestSendRentReminderTenantNotFound(t *testing.T) {
	c := newController(&gateway.SandboxClient{}, &mockLogRepo{}, map[int]*model.Tenant{})

	req := httptest.NewRequest("POST", "/sms/rent-reminder/99", nil)
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeResponse(t, w)
	assert.False(t, res.Success)
	assert.Equal(t, "Tenant not found", res.Message)
}

func TestSendBulkRentReminders(t *testing.T) {
	gw := &rejectOddGateway{}
	logs := &mockLogRepo{}
	c := newController(gw, logs, map[int]*model.Tenant{
		1: sampleTenant(1), 2: sampleTenant(2), 3: sampleTenant(3),
	})

	body, _ := json.Marshal(map[string]any{"tenant_ids": []int{1, 2, 3}})
	req := httptest.NewRequest("POST", "/sms/bulk-rent-reminders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.True(t, res.Success)
	assert.Equal(t, "Sent 2 out of 3 rent reminders successfully", res.Message)
	assert.Equal(t, "Success rate: 66.7%", res.Data)
	assert.Len(t, logs.logs, 3)
}

func TestSendBulkRentRemindersEmptyIDs(t *testing.T) {
	c := newController(&gateway.SandboxClient{}, &mockLogRepo{}, map[int]*model.Tenant{})

	body, _ := json.Marshal(map[string]any{"tenant_ids": []int{}})
	req := httptest.NewRequest("POST", "/sms/bulk-rent-reminders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendCustomSMS(t *testing.T) {
	sandbox := &gateway.SandboxClient{}
	logs := &mockLogRepo{}
	c := newController(sandbox, logs, map[int]*model.Tenant{})

	body, _ := json.Marshal(map[string]any{
		"phone":   "0712345678",
		"message": "Water will be off tomorrow morning.",
	})
	req := httptest.NewRequest("POST", "/sms/custom", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.True(t, res.Success)

	require.Len(t, sandbox.Calls, 1)
	assert.Equal(t, []string{"+254712345678"}, sandbox.Calls[0].Phones)
	assert.Equal(t, "Water will be off tomorrow morning.", sandbox.Calls[0].Message)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, "Unknown", logs.logs[0].RecipientName)
	assert.Nil(t, logs.logs[0].TenantID)
}

func TestSendCustomSMSInvalidPhone(t *testing.T) {
	c := newController(&gateway.SandboxClient{}, &mockLogRepo{}, map[int]*model.Tenant{})

	body, _ := json.Marshal(map[string]any{"phone": "12345", "message": "hi"})
	req := httptest.NewRequest("POST", "/sms/custom", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeResponse(t, w)
	assert.Equal(t, "Invalid Kenyan phone number format", res.Message)
}

func TestSendCustomSMSStaleLandlordIgnored(t *testing.T) {
	sandbox := &gateway.SandboxClient{}
	logs := &mockLogRepo{}
	c := newController(sandbox, logs, map[int]*model.Tenant{})

	body, _ := json.Marshal(map[string]any{
		"phone":       "0712345678",
		"message":     "hi",
		"landlord_id": 999,
	})
	req := httptest.NewRequest("POST", "/sms/custom", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(c).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, logs.logs, 1)
	assert.Nil(t, logs.logs[0].LandlordID)
}

func TestValidKenyanPhone(t *testing.T) {
	assert.True(t, controller.ValidKenyanPhone("0712345678"))
	assert.True(t, controller.ValidKenyanPhone("+254712345678"))
	assert.True(t, controller.ValidKenyanPhone("712345678"))
	assert.False(t, controller.ValidKenyanPhone("12345"))
	assert.False(t, controller.ValidKenyanPhone(""))
	assert.False(t, controller.ValidKenyanPhone("not a phone"))
}
