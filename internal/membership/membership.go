// AngelaMos | 2026
// membership.go

// Package membership holds the calendar arithmetic shared by renewals
// and completed payments. Every date here is a calendar date: midnight
// in the gym's configured location.
package membership

import (
	"time"
)

// PaymentDueWindow is how many days ahead of expiry a member is flagged
// for renewal outreach.
const PaymentDueWindow = 7

type Window struct {
	Start time.Time
	End   time.Time
}

// Extend computes the membership window after adding durationDays.
// Unexpired time is kept by starting from the current end date; an
// expired or missing end date restarts the window today.
func Extend(currentEnd *time.Time, today time.Time, durationDays int) Window {
	today = Date(today)

	start := today
	if currentEnd != nil {
		end := DateIn(*currentEnd, today.Location())
		if end.After(today) {
			start = end
		}
	}

	return Window{
		Start: start,
		End:   AddDays(start, durationDays),
	}
}

// Date truncates t to midnight in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateIn reinterprets t's calendar date in loc. DATE columns come back
// as UTC midnight and must be compared against local "today".
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddDays moves by calendar days so DST shifts never change the date.
func AddDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}

func Today(now time.Time) time.Time {
	return Date(now)
}

func DueBy(today time.Time) time.Time {
	return AddDays(Date(today), PaymentDueWindow)
}

// HasActiveWindow reports end >= today. A nil end has no window.
func HasActiveWindow(end *time.Time, today time.Time) bool {
	return end != nil && !DateIn(*end, today.Location()).Before(Date(today))
}

func IsActive(isActive bool, end *time.Time, today time.Time) bool {
	return isActive && HasActiveWindow(end, today)
}

func IsExpired(end *time.Time, today time.Time) bool {
	return end != nil && DateIn(*end, today.Location()).Before(Date(today))
}

// HasPaymentDue reports end <= today+7, which includes already expired
// windows.
func HasPaymentDue(end *time.Time, today time.Time) bool {
	return end != nil && !DateIn(*end, today.Location()).After(DueBy(today))
}

// IsPaymentDue is the listing filter: today <= end <= today+7.
func IsPaymentDue(end *time.Time, today time.Time) bool {
	return HasActiveWindow(end, today) && HasPaymentDue(end, today)
}

// DayRange returns [from 00:00, day after to 00:00) for inclusive
// calendar-date filtering on timestamps.
func DayRange(from, to time.Time) (time.Time, time.Time) {
	return Date(from), AddDays(Date(to), 1)
}

func MonthStart(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
}

func NextMonthStart(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
}
