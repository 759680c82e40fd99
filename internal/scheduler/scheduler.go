// internal/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/adhocore/gronx"

	"github.com/payloop/propman-backend/internal/model"
	"github.com/payloop/propman-backend/internal/repository"
	"github.com/payloop/propman-backend/internal/service"
)

// Reminders go out this many days ahead of the due date.
const reminderDaysBefore = 3

// Notifier is the slice of the SMS service the scheduled jobs use.
type Notifier interface {
	SendRentReminder(tenant *model.Tenant, daysBefore int) bool
	SendOverdueNotice(tenant *model.Tenant, daysOverdue int) bool
}

// Scheduler runs the daily notification jobs on cron cadences. The two
// jobs are independent; neither one's failure affects the other or the
// next day's run.
type Scheduler struct {
	TenantRepo   repository.TenantRepositoryInterface
	Notifier     Notifier
	ReminderCron string
	OverdueCron  string
	SendDelay    time.Duration
	Now          func() time.Time // overridable in tests

	stop chan struct{}
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start launches the trigger loop in a goroutine.
func (s *Scheduler) Start() {
	s.stop = make(chan struct{})
	go s.run()
}

// Stop halts the trigger loop. In-flight jobs finish on their own.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	gron := gronx.New()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Println("⏰ scheduler started, reminder cron:", s.ReminderCron, "overdue cron:", s.OverdueCron)

	for {
		select {
		case <-s.stop:
			log.Println("scheduler stopped")
			return
		case <-ticker.C:
			now := s.now()
			if due, err := gron.IsDue(s.ReminderCron, now); err != nil {
				log.Println("⚠️ bad reminder cron expression:", err)
			} else if due {
				go s.RunReminderJob(now)
			}
			if due, err := gron.IsDue(s.OverdueCron, now); err != nil {
				log.Println("⚠️ bad overdue cron expression:", err)
			} else if due {
				go s.RunOverdueJob(now)
			}
		}
	}
}

// RunReminderJob sends rent reminders to active tenants whose rent is due
// in three days. Re-running it the same day re-sends to whoever still
// matches; there is no intra-day dedup.
func (s *Scheduler) RunReminderJob(today time.Time) {
	defer recoverJob("rent reminder")

	log.Println("Starting daily rent reminder job")

	targetDay := today.AddDate(0, 0, reminderDaysBefore).Day()
	tenants, err := s.TenantRepo.FindActiveDueOn(targetDay)
	if err != nil {
		log.Println("⚠️ rent reminder job: failed to load tenants:", err)
		return
	}
	log.Println("Found", len(tenants), "tenants to send rent reminders")

	results := service.FanOut(len(tenants), s.SendDelay, func(i int) bool {
		return s.Notifier.SendRentReminder(&tenants[i], reminderDaysBefore)
	})

	log.Printf("Rent reminder job completed. Sent %d out of %d reminders successfully\n",
		service.CountSuccess(results), len(results))
}

// RunOverdueJob sends overdue notices. Defaulters 1-7 days overdue are
// notified every run; defaulters more than 7 days overdue only on Mondays.
func (s *Scheduler) RunOverdueJob(today time.Time) {
	defer recoverJob("overdue notice")

	log.Println("Starting daily overdue notice job")

	successCount := 0

	daily, err := s.TenantRepo.FindDefaultersDueOn(today.Day())
	if err != nil {
		log.Println("⚠️ overdue job: failed to load daily defaulters:", err)
	} else {
		results := service.FanOut(len(daily), s.SendDelay, func(i int) bool {
			tenant := &daily[i]
			daysOverdue := service.DaysOverdue(today, tenant.DueDay)
			if daysOverdue < 1 || daysOverdue > 7 {
				return false
			}
			return s.Notifier.SendOverdueNotice(tenant, daysOverdue)
		})
		successCount += service.CountSuccess(results)
	}

	if service.IsWeeklyEligible(today) {
		weekly, err := s.TenantRepo.FindDefaultersDueOnOrBefore(today.Day())
		if err != nil {
			log.Println("⚠️ overdue job: failed to load weekly defaulters:", err)
		} else {
			results := service.FanOut(len(weekly), s.SendDelay, func(i int) bool {
				tenant := &weekly[i]
				daysOverdue := service.DaysOverdue(today, tenant.DueDay)
				if daysOverdue <= 7 {
					return false
				}
				return s.Notifier.SendOverdueNotice(tenant, daysOverdue)
			})
			successCount += service.CountSuccess(results)
		}
	}

	log.Printf("Overdue notice job completed. Sent %d notices successfully\n", successCount)
}

func recoverJob(name string) {
	if r := recover(); r != nil {
		log.Println("⚠️ error in", name, "job:", r)
	}
}
