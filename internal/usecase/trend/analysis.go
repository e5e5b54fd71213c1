package trend

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// UnusualChangeThreshold is the month-over-month increase (percent) above which
	// a category is reported as unusual spending
	UnusualChangeThreshold = decimal.NewFromInt(30)
)

// CategoryComparison compares one expense category across the two windows
type CategoryComparison struct {
	CategoryID       string          `json:"categoryId"`
	Name             string          `json:"name"`
	CurrentSpend     decimal.Decimal `json:"currentSpend"`
	PreviousSpend    decimal.Decimal `json:"previousSpend"`
	PercentageChange decimal.Decimal `json:"percentageChange"`
}

// TotalComparison compares total expenses across the two windows
type TotalComparison struct {
	CurrentTotal     decimal.Decimal `json:"currentTotal"`
	PreviousTotal    decimal.Decimal `json:"previousTotal"`
	PercentageChange decimal.Decimal `json:"percentageChange"`
}

// UnusualSpending flags a category whose spend grew more than UnusualChangeThreshold
type UnusualSpending struct {
	CategoryID            string          `json:"categoryId"`
	Name                  string          `json:"name"`
	Amount                decimal.Decimal `json:"amount"`
	PercentageAboveNormal decimal.Decimal `json:"percentageAboveNormal"`
}

// SpendAnalysis is the month-over-month spending comparison
type SpendAnalysis struct {
	CategoryComparisons []CategoryComparison `json:"categoryComparisons"`
	TotalComparison     TotalComparison      `json:"totalComparison"`
	UnusualSpending     []UnusualSpending    `json:"unusualSpending"`
}

// Windows returns the current and previous comparison intervals for now.
// The current window is month to date; the previous window is the whole prior
// calendar month, so the two are not like-for-like by day count.
func Windows(now time.Time) (curStart, curEnd, prevStart, prevEnd time.Time) {
	curStart = calendar.StartOfMonth(now)
	curEnd = now
	prevStart = calendar.AddMonths(curStart, -1)
	prevEnd = curStart.Add(-time.Nanosecond)
	return curStart, curEnd, prevStart, prevEnd
}

// GenerateSpendAnalysis compares this month's spending with last month's.
// Logic:
//  1. Split expenses into the current (month to date) and previous (full prior month) windows
//  2. For every expense category compute both spends and the percentage change
//  3. A zero previous spend always yields a 100% change
//  4. Categories whose change exceeds UnusualChangeThreshold are reported as unusual
func GenerateSpendAnalysis(transactions []domain.Transaction, categories []domain.Category, now time.Time) SpendAnalysis {
	curStart, curEnd, prevStart, prevEnd := Windows(now)

	current := make(map[string]decimal.Decimal)
	previous := make(map[string]decimal.Decimal)
	currentTotal := decimal.Zero
	previousTotal := decimal.Zero

	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		date := t.Date.In(now.Location())
		switch {
		case calendar.Within(date, curStart, curEnd):
			current[t.CategoryID] = current[t.CategoryID].Add(t.Amount)
			currentTotal = currentTotal.Add(t.Amount)
		case calendar.Within(date, prevStart, prevEnd):
			previous[t.CategoryID] = previous[t.CategoryID].Add(t.Amount)
			previousTotal = previousTotal.Add(t.Amount)
		}
	}

	comparisons := make([]CategoryComparison, 0)
	unusual := make([]UnusualSpending, 0)
	for _, c := range categories {
		if c.Kind != domain.TransactionKindExpense {
			continue
		}

		comparison := CategoryComparison{
			CategoryID:       c.ID,
			Name:             c.Name,
			CurrentSpend:     current[c.ID],
			PreviousSpend:    previous[c.ID],
			PercentageChange: PercentageChange(current[c.ID], previous[c.ID]),
		}
		comparisons = append(comparisons, comparison)

		if comparison.PercentageChange.GreaterThan(UnusualChangeThreshold) {
			unusual = append(unusual, UnusualSpending{
				CategoryID:            comparison.CategoryID,
				Name:                  comparison.Name,
				Amount:                comparison.CurrentSpend,
				PercentageAboveNormal: comparison.PercentageChange,
			})
		}
	}

	return SpendAnalysis{
		CategoryComparisons: comparisons,
		TotalComparison: TotalComparison{
			CurrentTotal:     currentTotal,
			PreviousTotal:    previousTotal,
			PercentageChange: PercentageChange(currentTotal, previousTotal),
		},
		UnusualSpending: unusual,
	}
}

// PercentageChange returns (current-previous)/previous*100, or exactly 100 when previous is zero
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}
