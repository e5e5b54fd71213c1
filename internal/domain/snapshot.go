package domain

import (
	"context"
	"errors"
)

var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrWalletNotFound      = errors.New("shared wallet not found")
	ErrDebtNotFound        = errors.New("debt not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoSnapshotInContext = errors.New("no snapshot attached to context")
)

// Snapshot is the complete, read-only set of financial records a computation runs on
type Snapshot struct {
	Transactions  []Transaction  `json:"transactions"`
	Categories    []Category     `json:"categories"`
	Budgets       []Budget       `json:"budgets"`
	SavingsGoals  []SavingsGoal  `json:"savingsGoals"`
	Debts         []Debt         `json:"debts"`
	SharedWallets []SharedWallet `json:"sharedWallets"`
}

// NewSnapshot returns an empty snapshot seeded with the default categories
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Transactions:  []Transaction{},
		Categories:    DefaultCategories(),
		Budgets:       []Budget{},
		SavingsGoals:  []SavingsGoal{},
		Debts:         []Debt{},
		SharedWallets: []SharedWallet{},
	}
}

// Transaction returns the transaction with the given ID
func (s *Snapshot) Transaction(id string) (*Transaction, error) {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}

// Wallet returns the shared wallet with the given ID
func (s *Snapshot) Wallet(id string) (*SharedWallet, error) {
	for i := range s.SharedWallets {
		if s.SharedWallets[i].ID == id {
			return &s.SharedWallets[i], nil
		}
	}
	return nil, ErrWalletNotFound
}

// Debt returns the debt with the given ID
func (s *Snapshot) Debt(id string) (*Debt, error) {
	for i := range s.Debts {
		if s.Debts[i].ID == id {
			return &s.Debts[i], nil
		}
	}
	return nil, ErrDebtNotFound
}

// Budget returns the budget with the given ID
func (s *Snapshot) Budget(id string) (*Budget, error) {
	for i := range s.Budgets {
		if s.Budgets[i].ID == id {
			return &s.Budgets[i], nil
		}
	}
	return nil, ErrBudgetNotFound
}

type snapshotKey struct{}

// WithSnapshot attaches a snapshot to the context
func WithSnapshot(ctx context.Context, snap *Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// SnapshotFromContext returns the snapshot attached to ctx, if any
func SnapshotFromContext(ctx context.Context) (*Snapshot, bool) {
	snap, ok := ctx.Value(snapshotKey{}).(*Snapshot)
	return snap, ok && snap != nil
}

// MustSnapshotFromContext returns the snapshot attached to ctx.
// It panics when none is attached.
func MustSnapshotFromContext(ctx context.Context) *Snapshot {
	snap, ok := SnapshotFromContext(ctx)
	if !ok {
		panic(ErrNoSnapshotInContext)
	}
	return snap
}
