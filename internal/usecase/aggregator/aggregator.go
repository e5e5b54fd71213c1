package aggregator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CategoryAmount is one entry of a per-category breakdown
type CategoryAmount struct {
	Category domain.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// GoalProgress is the derived progress of a savings goal
type GoalProgress struct {
	GoalID     string          `json:"goalId"`
	Percentage decimal.Decimal `json:"percentage"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// Balance sums income minus expenses over every transaction, regardless of date
func Balance(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		switch t.Kind {
		case domain.TransactionKindIncome:
			total = total.Add(t.Amount)
		case domain.TransactionKindExpense:
			total = total.Sub(t.Amount)
		}
	}
	return total
}

// Expenses sums expense amounts inside period at now
func Expenses(transactions []domain.Transaction, period Period, now time.Time) decimal.Decimal {
	return sumKind(transactions, domain.TransactionKindExpense, period, now)
}

// Income sums income amounts inside period at now
func Income(transactions []domain.Transaction, period Period, now time.Time) decimal.Decimal {
	return sumKind(transactions, domain.TransactionKindIncome, period, now)
}

// Sum adds up the amounts of the given transactions
func Sum(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

func sumKind(transactions []domain.Transaction, kind domain.TransactionKind, period Period, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Kind == kind && period.Contains(t.Date, now) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ExpensesByCategory breaks down expenses inside period by category.
// Logic:
//  1. Start every expense category at zero, in category order
//  2. Accumulate matching expenses by category reference
//  3. Drop categories that stayed at zero
//  4. Sort by amount descending; ties keep category order (stable)
//
// Transactions referencing an unknown category are left out of the breakdown.
func ExpensesByCategory(transactions []domain.Transaction, categories []domain.Category, period Period, now time.Time) []CategoryAmount {
	index := make(map[string]int)
	breakdown := make([]CategoryAmount, 0)
	for _, c := range categories {
		if c.Kind != domain.TransactionKindExpense {
			continue
		}
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(breakdown)
		breakdown = append(breakdown, CategoryAmount{Category: c, Amount: decimal.Zero})
	}

	for _, t := range transactions {
		if t.Kind != domain.TransactionKindExpense || !period.Contains(t.Date, now) {
			continue
		}
		i, ok := index[t.CategoryID]
		if !ok {
			continue
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(t.Amount)
	}

	result := make([]CategoryAmount, 0, len(breakdown))
	for _, entry := range breakdown {
		if entry.Amount.IsPositive() {
			result = append(result, entry)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount.GreaterThan(result[j].Amount)
	})

	return result
}

// SavingsGoalProgress reports how far a goal is from its target.
// Percentage is clamped to [0, 100] and is 0 when the target is not positive;
// Remaining goes negative once the goal is exceeded.
func SavingsGoalProgress(goal domain.SavingsGoal) GoalProgress {
	percentage := decimal.Zero
	if goal.TargetAmount.IsPositive() {
		percentage = ClampPercentage(goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred))
	}

	return GoalProgress{
		GoalID:     goal.ID,
		Percentage: percentage,
		Remaining:  goal.TargetAmount.Sub(goal.CurrentAmount),
	}
}

// ClampPercentage bounds p to [0, 100]
func ClampPercentage(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
