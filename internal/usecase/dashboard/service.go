package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/aggregator"
	"github.com/simaogato/darkmoney-backend/internal/usecase/budget"
	"github.com/simaogato/darkmoney-backend/internal/usecase/debtplanner"
	"github.com/simaogato/darkmoney-backend/internal/usecase/export"
	"github.com/simaogato/darkmoney-backend/internal/usecase/notification"
	"github.com/simaogato/darkmoney-backend/internal/usecase/settlement"
	"github.com/simaogato/darkmoney-backend/internal/usecase/suggestion"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

// Overview represents the headline totals of a snapshot
type Overview struct {
	Balance    decimal.Decimal             `json:"balance"`
	Period     aggregator.Period           `json:"period"`
	Expenses   decimal.Decimal             `json:"expenses"`
	Income     decimal.Decimal             `json:"income"`
	ByCategory []aggregator.CategoryAmount `json:"byCategory"`
}

// Report is every derived view of a snapshot computed at one instant
type Report struct {
	GeneratedAt   time.Time                 `json:"generatedAt"`
	Overview      Overview                  `json:"overview"`
	Summary       export.Summary            `json:"summary"`
	Budgets       []budget.Progress         `json:"budgets"`
	SavingsGoals  []aggregator.GoalProgress `json:"savingsGoals"`
	SpendAnalysis trend.SpendAnalysis       `json:"spendAnalysis"`
	DebtStrategy  debtplanner.Strategy      `json:"debtStrategy"`
	Settlements   []settlement.Plan         `json:"settlements"`
	Suggestions   []domain.SmartSuggestion  `json:"suggestions"`
	Notifications []domain.Notification     `json:"notifications"`
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	SnapshotRepo domain.SnapshotRepository
	Suggestions  *suggestion.Engine
	Now          func() time.Time
}

// NewDashboardService creates a new DashboardService instance.
// monthlyIncome feeds the savings-rate suggestion; a non-positive value uses the default.
func NewDashboardService(snapshotRepo domain.SnapshotRepository, monthlyIncome decimal.Decimal) *DashboardService {
	return &DashboardService{
		SnapshotRepo: snapshotRepo,
		Suggestions:  suggestion.NewEngine(monthlyIncome),
		Now:          time.Now,
	}
}

// Load retrieves the snapshot saved under storeName
func (s *DashboardService) Load(ctx context.Context, storeName string) (*domain.Snapshot, error) {
	snap, err := s.SnapshotRepo.Load(ctx, storeName)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", storeName, err)
	}
	return snap, nil
}

// GetReport loads the snapshot for storeName and computes every derived view at the current instant
func (s *DashboardService) GetReport(ctx context.Context, storeName string) (*Report, error) {
	snap, err := s.Load(ctx, storeName)
	if err != nil {
		return nil, err
	}
	report := s.BuildReport(snap, s.Now())
	return &report, nil
}

// BuildReport computes every derived view of snap at now.
// Logic:
//   - The overview uses the month period
//   - Spend analysis feeds both the suggestions and the notifications
//   - Notifications are budget warnings, then bills due, then unusual spending, then suggestions
func (s *DashboardService) BuildReport(snap *domain.Snapshot, now time.Time) Report {
	analysis := s.SpendAnalysis(snap, now)
	suggestions := s.Suggestions.Generate(snap.Transactions, analysis)

	return Report{
		GeneratedAt:   now,
		Overview:      s.Overview(snap, aggregator.PeriodMonth, now),
		Summary:       export.BuildSummary(snap),
		Budgets:       s.BudgetProgress(snap, now),
		SavingsGoals:  s.SavingsGoals(snap),
		SpendAnalysis: analysis,
		DebtStrategy:  s.DebtStrategy(snap, now),
		Settlements:   s.Settlements(snap),
		Suggestions:   suggestions,
		Notifications: s.notifications(snap, analysis, suggestions, now),
	}
}

// Overview computes the balance and the period totals of snap
func (s *DashboardService) Overview(snap *domain.Snapshot, period aggregator.Period, now time.Time) Overview {
	return Overview{
		Balance:    aggregator.Balance(snap.Transactions),
		Period:     period,
		Expenses:   aggregator.Expenses(snap.Transactions, period, now),
		Income:     aggregator.Income(snap.Transactions, period, now),
		ByCategory: aggregator.ExpensesByCategory(snap.Transactions, snap.Categories, period, now),
	}
}

// Export is a rendered transaction export
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportTransactions renders every transaction of snap as CSV, named after now
func (s *DashboardService) ExportTransactions(snap *domain.Snapshot, now time.Time) (Export, error) {
	data, err := export.TransactionsCSV(snap)
	if err != nil {
		return Export{}, fmt.Errorf("failed to export transactions: %w", err)
	}
	return Export{
		Filename:    export.Filename(now),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// BudgetProgress computes the current-month progress of every budget
func (s *DashboardService) BudgetProgress(snap *domain.Snapshot, now time.Time) []budget.Progress {
	return budget.GetAllProgress(snap.Budgets, snap.Transactions, now)
}

// SavingsGoals computes the progress of every savings goal
func (s *DashboardService) SavingsGoals(snap *domain.Snapshot) []aggregator.GoalProgress {
	result := make([]aggregator.GoalProgress, 0, len(snap.SavingsGoals))
	for _, g := range snap.SavingsGoals {
		result = append(result, aggregator.SavingsGoalProgress(g))
	}
	return result
}

// SpendAnalysis compares this month's spending with last month's
func (s *DashboardService) SpendAnalysis(snap *domain.Snapshot, now time.Time) trend.SpendAnalysis {
	return trend.GenerateSpendAnalysis(snap.Transactions, snap.Categories, now)
}

// DebtStrategy orders the snapshot's debts for repayment
func (s *DashboardService) DebtStrategy(snap *domain.Snapshot, now time.Time) debtplanner.Strategy {
	return debtplanner.GeneratePaymentStrategy(snap.Debts, now)
}

// DebtPayoff computes the payoff projection of one debt
func (s *DashboardService) DebtPayoff(snap *domain.Snapshot, debtID string, now time.Time) (debtplanner.Payoff, error) {
	debt, err := snap.Debt(debtID)
	if err != nil {
		return debtplanner.Payoff{}, fmt.Errorf("debt %q: %w", debtID, err)
	}
	return debtplanner.CalculatePayoff(*debt, now), nil
}

// Settlements computes a settlement plan for every shared wallet
func (s *DashboardService) Settlements(snap *domain.Snapshot) []settlement.Plan {
	plans := make([]settlement.Plan, 0, len(snap.SharedWallets))
	for _, w := range snap.SharedWallets {
		plans = append(plans, settlement.GenerateSettlementPlan(w))
	}
	return plans
}

// Settlement computes the settlement plan of one shared wallet
func (s *DashboardService) Settlement(snap *domain.Snapshot, walletID string) (settlement.Plan, error) {
	wallet, err := snap.Wallet(walletID)
	if err != nil {
		return settlement.Plan{}, fmt.Errorf("wallet %q: %w", walletID, err)
	}
	return settlement.GenerateSettlementPlan(*wallet), nil
}

// SmartSuggestions runs the suggestion rules against snap
func (s *DashboardService) SmartSuggestions(snap *domain.Snapshot, now time.Time) []domain.SmartSuggestion {
	return s.Suggestions.Generate(snap.Transactions, s.SpendAnalysis(snap, now))
}

// Notifications derives every notification of snap at now
func (s *DashboardService) Notifications(snap *domain.Snapshot, now time.Time) []domain.Notification {
	analysis := s.SpendAnalysis(snap, now)
	return s.notifications(snap, analysis, s.Suggestions.Generate(snap.Transactions, analysis), now)
}

func (s *DashboardService) notifications(snap *domain.Snapshot, analysis trend.SpendAnalysis, suggestions []domain.SmartSuggestion, now time.Time) []domain.Notification {
	result := notification.CheckBudgetWarnings(snap.Budgets, snap.Transactions, now)
	result = append(result, notification.CheckRecurringTransactions(snap.Transactions, now)...)
	result = append(result, notification.SpendAnalysisNotifications(analysis, now)...)
	result = append(result, notification.SuggestionNotifications(suggestions, now)...)
	return result
}
