package aggregator

import (
	"time"

	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// Period is a named calendar window used to scope aggregation
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Valid reports whether p is a known period
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	default:
		return false
	}
}

// Contains reports whether date falls inside the period evaluated at now.
// Logic:
//   - day: same calendar day as now
//   - week: calendar days [today-7, today], both inclusive
//   - month: same calendar month and year
//   - year: same calendar year
//
// An unknown period contains every date.
func (p Period) Contains(date, now time.Time) bool {
	switch p {
	case PeriodDay:
		return calendar.SameDay(date, now)
	case PeriodWeek:
		start := calendar.StartOfDay(now).AddDate(0, 0, -7)
		return calendar.Within(date, start, calendar.EndOfDay(now))
	case PeriodMonth:
		return calendar.SameMonth(date, now)
	case PeriodYear:
		return calendar.SameYear(date, now)
	default:
		return true
	}
}

// FilterByPeriod returns the transactions whose date falls inside period at now.
// The input slice is not modified; input order is preserved.
func FilterByPeriod(transactions []domain.Transaction, period Period, now time.Time) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if period.Contains(t.Date, now) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
