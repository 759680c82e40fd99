// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/payloop/propman-backend/internal/config"
	"github.com/payloop/propman-backend/internal/controller"
	"github.com/payloop/propman-backend/internal/db"
	"github.com/payloop/propman-backend/internal/gateway"
	"github.com/payloop/propman-backend/internal/handler"
	"github.com/payloop/propman-backend/internal/repository"
	"github.com/payloop/propman-backend/internal/scheduler"
	"github.com/payloop/propman-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Init DB
	db.Init()

	tenantRepo := &repository.TenantRepository{DB: db.DB}
	landlordRepo := &repository.LandlordRepository{DB: db.DB}
	smsLogRepo := &repository.SMSLogRepository{DB: db.DB}

	var smsGateway gateway.Client
	if cfg.ATAPIKey != "" {
		smsGateway = gateway.NewAfricasTalkingClient(cfg.ATUsername, cfg.ATAPIKey, cfg.ATBaseURL)
	} else {
		log.Println("⚠️ AT_API_KEY not set, using sandbox SMS gateway")
		smsGateway = &gateway.SandboxClient{}
	}

	smsService := &service.SMSService{
		SMSLogRepo: smsLogRepo,
		Gateway:    smsGateway,
		Config:     cfg,
	}

	sched := &scheduler.Scheduler{
		TenantRepo:   tenantRepo,
		Notifier:     smsService,
		ReminderCron: cfg.ReminderCron,
		OverdueCron:  cfg.OverdueCron,
		SendDelay:    cfg.SchedulerSendDelay,
	}
	sched.Start()
	defer sched.Stop()

	smsController := &controller.SMSController{
		SMSService:   smsService,
		TenantRepo:   tenantRepo,
		LandlordRepo: landlordRepo,
		Config:       cfg,
	}

	smsLogHandler := &handler.SMSLogHandler{
		Repo: smsLogRepo,
	}

	r := chi.NewRouter()

	// SMS routes
	r.Post("/sms/rent-reminder/{tenantId}", smsController.SendRentReminder)
	r.Post("/sms/overdue-notice/{tenantId}", smsController.SendOverdueNotice)
	r.Post("/sms/payment-confirmation/{tenantId}", smsController.SendPaymentConfirmation)
	r.Post("/sms/welcome/{tenantId}", smsController.SendWelcomeMessage)
	r.Post("/sms/bulk-rent-reminders", smsController.SendBulkRentReminders)
	r.Post("/sms/custom", smsController.SendCustomSMS)
	r.Get("/sms/logs", smsLogHandler.GetSMSLogs)
	r.Get("/sms/stats/{landlordId}", smsLogHandler.GetSMSStats)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
