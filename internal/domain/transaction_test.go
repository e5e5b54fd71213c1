package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "Plain expense should pass",
			tx: Transaction{
				ID:         "tx-1",
				Amount:     decimal.NewFromInt(42),
				CategoryID: "1",
				Date:       date,
				Kind:       TransactionKindExpense,
			},
			wantErr: false,
		},
		{
			name: "Zero amount income should pass",
			tx: Transaction{
				ID:   "tx-2",
				Date: date,
				Kind: TransactionKindIncome,
			},
			wantErr: false,
		},
		{
			name: "Negative amount should fail",
			tx: Transaction{
				ID:     "tx-3",
				Amount: decimal.NewFromInt(-5),
				Kind:   TransactionKindExpense,
			},
			wantErr: true,
			errMsg:  "transaction amount cannot be negative",
		},
		{
			name: "Unknown kind should fail",
			tx: Transaction{
				ID:     "tx-4",
				Amount: decimal.NewFromInt(5),
				Kind:   TransactionKind("transfer"),
			},
			wantErr: true,
			errMsg:  "transaction type must be expense or income",
		},
		{
			name: "Recurring monthly should pass",
			tx: Transaction{
				ID:         "tx-5",
				Amount:     decimal.NewFromInt(15),
				Kind:       TransactionKindExpense,
				Recurrence: &Recurrence{Period: RecurringMonthly, NextDueDate: date},
			},
			wantErr: false,
		},
		{
			name: "Unknown recurring period should fail",
			tx: Transaction{
				ID:         "tx-6",
				Amount:     decimal.NewFromInt(15),
				Kind:       TransactionKindExpense,
				Recurrence: &Recurrence{Period: RecurringPeriod("daily"), NextDueDate: date},
			},
			wantErr: true,
			errMsg:  "recurring period must be weekly, monthly or yearly",
		},
		{
			name: "Shared without participants should fail",
			tx: Transaction{
				ID:     "tx-7",
				Amount: decimal.NewFromInt(100),
				Kind:   TransactionKindExpense,
				Shared: &SharedSplit{SplitPercentage: decimal.NewFromInt(50)},
			},
			wantErr: true,
			errMsg:  "shared transaction must list at least one participant",
		},
		{
			name: "Split above 100 should fail",
			tx: Transaction{
				ID:     "tx-8",
				Amount: decimal.NewFromInt(100),
				Kind:   TransactionKindExpense,
				Shared: &SharedSplit{SharedWith: []string{"A", "B"}, SplitPercentage: decimal.NewFromInt(101)},
			},
			wantErr: true,
			errMsg:  "split percentage must be between 0 and 100",
		},
		{
			name: "Split of exactly 100 should pass",
			tx: Transaction{
				ID:     "tx-9",
				Amount: decimal.NewFromInt(100),
				Kind:   TransactionKindExpense,
				Shared: &SharedSplit{SharedWith: []string{"A", "B"}, SplitPercentage: decimal.NewFromInt(100)},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Kind(t *testing.T) {
	expense := Transaction{Kind: TransactionKindExpense}
	income := Transaction{Kind: TransactionKindIncome}

	assert.True(t, expense.IsExpense())
	assert.False(t, expense.IsIncome())
	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
}
