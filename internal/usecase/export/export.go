package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/aggregator"
)

const (
	// RecentLimit is the number of transactions listed in a Summary
	RecentLimit = 10

	// ContentType is the media type of WriteTransactionsCSV output
	ContentType = "text/csv; charset=utf-8"

	unknownCategory = "Unknown"
)

// Header is the column row of the transaction export
var Header = []string{"Date", "Type", "Category", "Amount", "Notes", "Is Recurring", "Recurring Period", "Next Due Date"}

// RecentTransaction is a transaction with its category name resolved
type RecentTransaction struct {
	ID       string                 `json:"id"`
	Date     string                 `json:"date"`
	Kind     domain.TransactionKind `json:"type"`
	Category string                 `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// Summary is the all-time report of a snapshot
type Summary struct {
	TotalIncome        decimal.Decimal     `json:"totalIncome"`
	TotalExpenses      decimal.Decimal     `json:"totalExpenses"`
	NetBalance         decimal.Decimal     `json:"netBalance"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

// BuildSummary totals every transaction regardless of date and lists the
// RecentLimit most recent ones, newest first. Equal dates keep snapshot order.
func BuildSummary(snap *domain.Snapshot) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range snap.Transactions {
		switch t.Kind {
		case domain.TransactionKindIncome:
			income = income.Add(t.Amount)
		case domain.TransactionKindExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	ordered := make([]domain.Transaction, len(snap.Transactions))
	copy(ordered, snap.Transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})
	if len(ordered) > RecentLimit {
		ordered = ordered[:RecentLimit]
	}

	names := categoryNames(snap.Categories)
	recent := make([]RecentTransaction, 0, len(ordered))
	for _, t := range ordered {
		recent = append(recent, RecentTransaction{
			ID:       t.ID,
			Date:     calendar.FormatDate(t.Date),
			Kind:     t.Kind,
			Category: categoryName(names, t.CategoryID),
			Amount:   t.Amount,
		})
	}

	return Summary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		NetBalance:         aggregator.Balance(snap.Transactions),
		RecentTransactions: recent,
	}
}

// WriteTransactionsCSV writes one row per transaction, in snapshot order, after Header.
// Dates are 2006-01-02; unknown category references are written as "Unknown".
func WriteTransactionsCSV(w io.Writer, snap *domain.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	names := categoryNames(snap.Categories)
	for _, t := range snap.Transactions {
		recurring, period, nextDue := "No", "", ""
		if t.Recurrence != nil {
			recurring = "Yes"
			period = string(t.Recurrence.Period)
			if !t.Recurrence.NextDueDate.IsZero() {
				nextDue = calendar.FormatDate(t.Recurrence.NextDueDate)
			}
		}

		row := []string{
			calendar.FormatDate(t.Date),
			string(t.Kind),
			categoryName(names, t.CategoryID),
			t.Amount.StringFixed(2),
			t.Notes,
			recurring,
			period,
			nextDue,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %q: %w", t.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// TransactionsCSV renders WriteTransactionsCSV into memory
func TransactionsCSV(snap *domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTransactionsCSV(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename names an export produced at now
func Filename(now time.Time) string {
	return "darkmoney_export_" + calendar.FormatDate(now) + ".csv"
}

func categoryNames(categories []domain.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		if _, ok := names[c.ID]; !ok {
			names[c.ID] = c.Name
		}
	}
	return names
}

func categoryName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return unknownCategory
}
