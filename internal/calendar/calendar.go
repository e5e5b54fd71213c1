// Package calendar holds the date arithmetic shared by the analytics components.
// All helpers work in the location of the time they are given.
package calendar

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's day
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of t's month
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in b's location
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SameMonth reports whether a and b fall in the same calendar month in b's location
func SameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameYear reports whether a and b fall in the same calendar year in b's location
func SameYear(a, b time.Time) bool {
	return a.In(b.Location()).Year() == b.Year()
}

// Within reports whether t lies in [start, end]
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DaysInMonth returns the number of days of the given month
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// AddMonths adds n months to t, clamping the day to the end of the target month
// (Jan 31 + 1 month = Feb 28 or 29) instead of overflowing like time.AddDate.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)

	day := t.Day()
	if last := DaysInMonth(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return target.AddDate(0, 0, day-1)
}

// AddYears adds n years to t with the same clamping as AddMonths (Feb 29 + 1 year = Feb 28)
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// FormatDate formats t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
