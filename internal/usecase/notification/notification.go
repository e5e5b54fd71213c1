package notification

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/budget"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

// CheckBudgetWarnings emits one budget_warning per budget whose current-month usage
// percentage reached its warning threshold. Budgets below the threshold emit nothing.
func CheckBudgetWarnings(budgets []domain.Budget, transactions []domain.Transaction, now time.Time) []domain.Notification {
	notifications := make([]domain.Notification, 0)
	for _, b := range budgets {
		progress := budget.GetProgress(b, transactions, now)
		if progress.Percentage.LessThan(b.Threshold()) {
			continue
		}

		notifications = append(notifications, domain.Notification{
			ID:        "budget_warning_" + b.ID,
			Kind:      domain.NotificationBudgetWarning,
			Title:     "Budget Warning",
			Message:   fmt.Sprintf("You've used %s%% of your budget for this category", progress.Percentage.Round(0).String()),
			Date:      now,
			RelatedID: b.ID,
		})
	}
	return notifications
}

// CheckRecurringTransactions emits one bill_due per recurring transaction whose
// next due date is today or already past
func CheckRecurringTransactions(transactions []domain.Transaction, now time.Time) []domain.Notification {
	notifications := make([]domain.Notification, 0)
	endOfToday := calendar.EndOfDay(now)
	for _, t := range transactions {
		if t.Recurrence == nil || t.Recurrence.NextDueDate.IsZero() {
			continue
		}
		if t.Recurrence.NextDueDate.After(endOfToday) {
			continue
		}

		notifications = append(notifications, domain.Notification{
			ID:        "bill_due_" + t.ID,
			Kind:      domain.NotificationBillDue,
			Title:     "Payment Due",
			Message:   fmt.Sprintf("%s payment is due today", FormatCurrency(t.Amount)),
			Date:      now,
			RelatedID: t.ID,
		})
	}
	return notifications
}

// NextDueDate advances a recurring transaction's due date by one period and returns it
// formatted as 2006-01-02. The transaction is not modified; persisting the new date is
// the caller's job. ok is false when the transaction has no usable recurrence.
func NextDueDate(t domain.Transaction) (string, bool) {
	if t.Recurrence == nil || t.Recurrence.NextDueDate.IsZero() {
		return "", false
	}

	current := t.Recurrence.NextDueDate
	var next time.Time
	switch t.Recurrence.Period {
	case domain.RecurringWeekly:
		next = current.AddDate(0, 0, 7)
	case domain.RecurringMonthly:
		next = calendar.AddMonths(current, 1)
	case domain.RecurringYearly:
		next = calendar.AddYears(current, 1)
	default:
		return "", false
	}

	return calendar.FormatDate(next), true
}

// SpendAnalysisNotifications emits one spend_analysis notification per unusual category
func SpendAnalysisNotifications(analysis trend.SpendAnalysis, now time.Time) []domain.Notification {
	notifications := make([]domain.Notification, 0, len(analysis.UnusualSpending))
	for _, u := range analysis.UnusualSpending {
		notifications = append(notifications, domain.Notification{
			ID:        "spend_analysis_" + u.CategoryID,
			Kind:      domain.NotificationSpendAnalysis,
			Title:     "Unusual Spending",
			Message:   fmt.Sprintf("%s spending is up %s%% compared to last month (%s so far)", u.Name, u.PercentageAboveNormal.Round(0).String(), FormatCurrency(u.Amount)),
			Date:      now,
			RelatedID: u.CategoryID,
		})
	}
	return notifications
}

// SuggestionNotifications wraps every suggestion in a smart_suggestion notification
// whose action carries the potential savings
func SuggestionNotifications(suggestions []domain.SmartSuggestion, now time.Time) []domain.Notification {
	notifications := make([]domain.Notification, 0, len(suggestions))
	for _, s := range suggestions {
		notifications = append(notifications, domain.Notification{
			ID:        "smart_suggestion_" + s.ID,
			Kind:      domain.NotificationSmartSuggestion,
			Title:     s.Title,
			Message:   s.Description,
			Date:      now,
			RelatedID: s.ID,
			Action: &domain.Action{
				Kind:        s.Kind.ActionKind(),
				Amount:      s.PotentialSavings,
				Description: fmt.Sprintf("Potential savings of %s", FormatCurrency(s.PotentialSavings)),
			},
		})
	}
	return notifications
}

// FormatCurrency renders an amount as US dollars with two decimals, e.g. $1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}
