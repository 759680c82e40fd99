// internal/service/duedate.go
package service

import "time"

// DueInDays reports whether a tenant with the given due day has rent due
// exactly n days from today. This is a day-of-month match: a due day of 31
// never matches in a 30-day month and that cycle is skipped.
func DueInDays(today time.Time, dueDay, n int) bool {
	return today.AddDate(0, 0, n).Day() == dueDay
}

// DaysOverdue returns how many days today is past the most recent due date.
// If this month's due date has not passed yet, the previous month's is used.
func DaysOverdue(today time.Time, dueDay int) int {
	due := time.Date(today.Year(), today.Month(), dueDay, 0, 0, 0, 0, today.Location())
	if due.After(today) {
		prev := due.AddDate(0, -1, 0)
		if prev.Day() != dueDay {
			// previous month is shorter than dueDay, clamp to its last day
			prev = time.Date(due.Year(), due.Month(), 0, 0, 0, 0, 0, today.Location())
		}
		due = prev
	}
	return int(today.Sub(due).Hours() / 24)
}

// IsWeeklyEligible reports whether today is the day the weekly long-overdue
// notices go out. Fixed to Monday.
func IsWeeklyEligible(today time.Time) bool {
	return today.Weekday() == time.Monday
}
