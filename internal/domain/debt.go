package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind represents the product type of a debt
type DebtKind string

const (
	DebtKindCreditCard DebtKind = "credit_card"
	DebtKindLoan       DebtKind = "loan"
	DebtKindMortgage   DebtKind = "mortgage"
)

// Valid reports whether k is a known debt kind
func (k DebtKind) Valid() bool {
	switch k {
	case DebtKindCreditCard, DebtKindLoan, DebtKindMortgage:
		return true
	default:
		return false
	}
}

// Debt represents an outstanding fixed-rate liability
type Debt struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	InterestRate    decimal.Decimal `json:"interestRate"`   // annual, percent
	MinimumPayment  decimal.Decimal `json:"minimumPayment"` // zero means "derive from balance"
	DueDate         time.Time       `json:"dueDate"`
	Kind            DebtKind        `json:"type"`
	Payments        []DebtPayment   `json:"payments"`
}

// DebtPayment is a single payment against a debt.
// Projected schedules are produced with IsPaid=false and the balance left after the payment.
type DebtPayment struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Date             string          `json:"date"` // 2006-01-02
	IsPaid           bool            `json:"isPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// Validate ensures the debt adheres to domain rules
func (d *Debt) Validate() error {
	if d.Name == "" {
		return errors.New("debt name cannot be empty")
	}

	if !d.Kind.Valid() {
		return errors.New("debt type must be credit_card, loan or mortgage")
	}

	if d.RemainingAmount.IsNegative() {
		return errors.New("debt remaining amount cannot be negative")
	}

	if d.InterestRate.IsNegative() {
		return errors.New("debt interest rate cannot be negative")
	}

	if d.MinimumPayment.IsNegative() {
		return errors.New("debt minimum payment cannot be negative")
	}

	return nil
}
