package budget

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/aggregator"
)

var hundred = decimal.NewFromInt(100)

// Progress represents how much of a budget has been used this month
type Progress struct {
	BudgetID   string          `json:"budgetId"`
	Used       decimal.Decimal `json:"used"`
	Percentage decimal.Decimal `json:"percentage"`
}

// GetProgress calculates the spend-to-limit ratio of a budget for the calendar month of now.
// Logic:
//   - Only expenses of the budget's category dated between the first and last day of the month count
//   - Used is their sum and may exceed the limit
//   - Percentage is Used/Amount*100 clamped to [0, 100], or 0 when the limit is zero
func GetProgress(b domain.Budget, transactions []domain.Transaction, now time.Time) Progress {
	start := calendar.StartOfMonth(now)
	end := calendar.EndOfMonth(now)

	used := decimal.Zero
	for _, t := range transactions {
		if t.CategoryID != b.CategoryID || !t.IsExpense() {
			continue
		}
		if !calendar.Within(t.Date.In(now.Location()), start, end) {
			continue
		}
		used = used.Add(t.Amount)
	}

	percentage := decimal.Zero
	if b.Amount.IsPositive() {
		percentage = aggregator.ClampPercentage(used.Div(b.Amount).Mul(hundred))
	}

	return Progress{
		BudgetID:   b.ID,
		Used:       used,
		Percentage: percentage,
	}
}

// GetAllProgress calculates progress for every budget, in budget order
func GetAllProgress(budgets []domain.Budget, transactions []domain.Transaction, now time.Time) []Progress {
	result := make([]Progress, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, GetProgress(b, transactions, now))
	}
	return result
}
