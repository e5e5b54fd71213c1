package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWarningThreshold is the budget usage percentage that triggers a warning
// when the budget does not set its own threshold
var DefaultWarningThreshold = decimal.NewFromInt(80)

// Budget caps monthly spending for one expense category
type Budget struct {
	ID               string           `json:"id"`
	CategoryID       string           `json:"categoryId"`
	Amount           decimal.Decimal  `json:"amount"`                     // monthly limit
	WarningThreshold *decimal.Decimal `json:"warningThreshold,omitempty"` // percentage, nil means default
}

// Threshold returns the effective warning threshold.
// A missing or zero threshold falls back to DefaultWarningThreshold.
func (b *Budget) Threshold() decimal.Decimal {
	if b.WarningThreshold == nil || b.WarningThreshold.IsZero() {
		return DefaultWarningThreshold
	}
	return *b.WarningThreshold
}

// Validate ensures the budget adheres to domain rules
func (b *Budget) Validate() error {
	if b.CategoryID == "" {
		return errors.New("budget must reference a category")
	}

	if b.Amount.IsNegative() {
		return errors.New("budget amount cannot be negative")
	}

	if b.WarningThreshold != nil {
		if b.WarningThreshold.IsNegative() || b.WarningThreshold.GreaterThan(hundred) {
			return errors.New("warning threshold must be between 0 and 100")
		}
	}

	return nil
}

// SavingsGoal tracks progress towards a target amount.
// CurrentAmount may exceed TargetAmount once the goal is reached.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
}

// Validate ensures the savings goal adheres to domain rules
func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return errors.New("savings goal name cannot be empty")
	}

	if g.TargetAmount.IsNegative() {
		return errors.New("savings goal target cannot be negative")
	}

	return nil
}
