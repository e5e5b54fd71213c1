package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a transaction
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// Valid reports whether k is a known transaction kind
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindExpense, TransactionKindIncome:
		return true
	default:
		return false
	}
}

// RecurringPeriod represents how often a recurring transaction repeats
type RecurringPeriod string

const (
	RecurringWeekly  RecurringPeriod = "weekly"
	RecurringMonthly RecurringPeriod = "monthly"
	RecurringYearly  RecurringPeriod = "yearly"
)

// Valid reports whether p is a known recurring period
func (p RecurringPeriod) Valid() bool {
	switch p {
	case RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	default:
		return false
	}
}

// Recurrence describes a repeating transaction and when it is next due
type Recurrence struct {
	Period      RecurringPeriod `json:"period"`
	NextDueDate time.Time       `json:"nextDueDate"`
}

// SharedSplit describes an expense shared between wallet members.
// SharedWith[0] is always the member who paid.
type SharedSplit struct {
	SharedWith      []string        `json:"sharedWith"`
	SplitPercentage decimal.Decimal `json:"splitPercentage"` // payer's share, 0-100
}

// Transaction represents a single income or expense record.
// Amount is always non-negative; Kind carries the direction.
type Transaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"categoryId"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
	Kind       TransactionKind `json:"type"`
	Recurrence *Recurrence     `json:"recurrence,omitempty"`
	Shared     *SharedSplit    `json:"shared,omitempty"`
}

// IsExpense reports whether the transaction is an expense
func (t *Transaction) IsExpense() bool {
	return t.Kind == TransactionKindExpense
}

// IsIncome reports whether the transaction is an income
func (t *Transaction) IsIncome() bool {
	return t.Kind == TransactionKindIncome
}

// Validate ensures the transaction adheres to domain rules.
// The analytics engine never calls it; it guards the write path.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return errors.New("transaction amount cannot be negative")
	}

	if !t.Kind.Valid() {
		return errors.New("transaction type must be expense or income")
	}

	if t.Recurrence != nil && !t.Recurrence.Period.Valid() {
		return errors.New("recurring period must be weekly, monthly or yearly")
	}

	if t.Shared != nil {
		if len(t.Shared.SharedWith) == 0 {
			return errors.New("shared transaction must list at least one participant")
		}
		if t.Shared.SplitPercentage.IsNegative() || t.Shared.SplitPercentage.GreaterThan(hundred) {
			return errors.New("split percentage must be between 0 and 100")
		}
	}

	return nil
}

var hundred = decimal.NewFromInt(100)
