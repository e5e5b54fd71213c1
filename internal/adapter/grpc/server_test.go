package grpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/darkmoney-backend/internal/adapter/repository/memory"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/dashboard"
)

const testToken = "test-token-123"

var now = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func fixture() *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Transactions = []domain.Transaction{
		{ID: "salary", Amount: d("5000"), CategoryID: "7", Date: now.AddDate(0, 0, -10), Kind: domain.TransactionKindIncome},
		{ID: "groceries", Amount: d("420"), CategoryID: "1", Date: now.AddDate(0, 0, -1), Kind: domain.TransactionKindExpense},
		{
			ID: "gym", Amount: d("40"), CategoryID: "6", Date: now.AddDate(0, -1, 0), Kind: domain.TransactionKindExpense, Notes: "gym membership",
			Recurrence: &domain.Recurrence{Period: domain.RecurringMonthly, NextDueDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)},
		},
	}
	snap.Budgets = []domain.Budget{{ID: "food", CategoryID: "1", Amount: d("500")}}
	snap.Debts = []domain.Debt{{ID: "card", Name: "Card", RemainingAmount: d("1200"), InterestRate: d("12"), MinimumPayment: d("100"), Kind: domain.DebtKindCreditCard}}
	snap.SharedWallets = []domain.SharedWallet{{
		ID:      "house",
		Members: []string{"A", "B"},
		Transactions: []domain.Transaction{{
			ID: "w1", Amount: d("100"), Kind: domain.TransactionKindExpense,
			Shared: &domain.SharedSplit{SharedWith: []string{"A", "B"}, SplitPercentage: d("60")},
		}},
	}}
	return snap
}

type testEnv struct {
	client *AnalyticsServiceClient
	logs   *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo := memory.NewSnapshotRepository()
	require.NoError(t, repo.Save(ctx, "finance_data", fixture()))
	require.NoError(t, repo.Save(ctx, "empty", domain.NewSnapshot()))

	service := dashboard.NewDashboardService(repo, decimal.Zero)
	service.Now = func() time.Time { return now }

	logs := &bytes.Buffer{}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(zerolog.New(logs)),
		RecoveryInterceptor(zerolog.New(logs)),
		AuthInterceptor(testToken),
		SnapshotInterceptor(repo, "finance_data"),
	))
	RegisterAnalyticsServiceServer(srv, NewServer(service))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testEnv{client: NewAnalyticsServiceClient(conn), logs: logs}
}

func authed(kv ...string) context.Context {
	return metadata.NewOutgoingContext(context.Background(), metadata.Pairs(append([]string{"authorization", testToken}, kv...)...))
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "error should be a gRPC status")
	assert.Equal(t, code, st.Code(), st.Message())
}

func TestServer_GetReport(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.client.GetReport(authed(), &SnapshotRequest{})

	require.NoError(t, err)
	assert.True(t, report.GeneratedAt.Equal(now))
	assert.True(t, report.Overview.Expenses.Equal(d("420")))
	require.Len(t, report.Budgets, 1)
	assert.True(t, report.Budgets[0].Percentage.Equal(d("84")))
	assert.Equal(t, domain.NotificationBudgetWarning, report.Notifications[0].Kind)
	assert.Contains(t, env.logs.String(), AnalyticsService_GetReport_FullMethodName)
}

func TestServer_GetOverview(t *testing.T) {
	env := newTestEnv(t)

	overview, err := env.client.GetOverview(authed(), &OverviewRequest{Period: "YEAR"})
	require.NoError(t, err)
	assert.True(t, overview.Income.Equal(d("5000")))
	assert.True(t, overview.Expenses.Equal(d("460")))
	assert.True(t, overview.Balance.Equal(d("4540")))

	_, err = env.client.GetOverview(authed(), &OverviewRequest{Period: "fortnight"})
	requireCode(t, err, codes.InvalidArgument)
}

func TestServer_GetBudgetProgress(t *testing.T) {
	env := newTestEnv(t)

	all, err := env.client.GetBudgetProgress(authed(), &BudgetProgressRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Budgets, 1)

	one, err := env.client.GetBudgetProgress(authed(), &BudgetProgressRequest{BudgetID: "food"})
	require.NoError(t, err)
	require.Len(t, one.Budgets, 1)
	assert.True(t, one.Budgets[0].Used.Equal(d("420")))

	_, err = env.client.GetBudgetProgress(authed(), &BudgetProgressRequest{BudgetID: "travel"})
	requireCode(t, err, codes.NotFound)
}

func TestServer_GetDebtPayoff(t *testing.T) {
	env := newTestEnv(t)

	payoff, err := env.client.GetDebtPayoff(authed(), &DebtPayoffRequest{DebtID: "card"})
	require.NoError(t, err)
	assert.Equal(t, 9, payoff.MonthsToPayoff)
	assert.True(t, payoff.SuggestedPayment.Equal(d("150")))
	assert.Equal(t, "2024-06-15", payoff.AmortizationSchedule[0].Date)

	_, err = env.client.GetDebtPayoff(authed(), &DebtPayoffRequest{})
	requireCode(t, err, codes.InvalidArgument)

	_, err = env.client.GetDebtPayoff(authed(), &DebtPayoffRequest{DebtID: "car"})
	requireCode(t, err, codes.NotFound)
}

func TestServer_GetSettlementPlan(t *testing.T) {
	env := newTestEnv(t)

	plan, err := env.client.GetSettlementPlan(authed(), &SettlementPlanRequest{WalletID: "house"})
	require.NoError(t, err)
	require.Len(t, plan.Payments, 1)
	assert.Equal(t, "B", plan.Payments[0].From)
	assert.Equal(t, "A", plan.Payments[0].To)
	assert.True(t, plan.Payments[0].Amount.Equal(d("60")))

	_, err = env.client.GetSettlementPlan(authed(), &SettlementPlanRequest{WalletID: "cabin"})
	requireCode(t, err, codes.NotFound)
}

func TestServer_GetNextDueDate(t *testing.T) {
	env := newTestEnv(t)

	next, err := env.client.GetNextDueDate(authed(), &NextDueDateRequest{TransactionID: "gym"})
	require.NoError(t, err)
	assert.True(t, next.Applicable)
	assert.Equal(t, "2024-02-29", next.NextDueDate)

	next, err = env.client.GetNextDueDate(authed(), &NextDueDateRequest{TransactionID: "salary"})
	require.NoError(t, err)
	assert.False(t, next.Applicable)
	assert.Empty(t, next.NextDueDate)

	_, err = env.client.GetNextDueDate(authed(), &NextDueDateRequest{TransactionID: "nope"})
	requireCode(t, err, codes.NotFound)
}

func TestServer_ExportTransactions(t *testing.T) {
	env := newTestEnv(t)

	exported, err := env.client.ExportTransactions(authed(), &SnapshotRequest{})
	require.NoError(t, err)
	assert.Equal(t, "darkmoney_export_2024-05-15.csv", exported.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", exported.ContentType)
	assert.Contains(t, string(exported.Data), "2024-04-15,expense,Health,40.00,gym membership,Yes,monthly,2024-01-31")

	empty, err := env.client.ExportTransactions(authed(StoreMetadataKey, "empty"), &SnapshotRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Date,Type,Category,Amount,Notes,Is Recurring,Recurring Period,Next Due Date\n", string(empty.Data))
}

func TestServer_SuggestionsNotificationsAndAnalysis(t *testing.T) {
	env := newTestEnv(t)

	suggestions, err := env.client.GetSuggestions(authed(), &SnapshotRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions.Suggestions)

	notifications, err := env.client.GetNotifications(authed(), &SnapshotRequest{})
	require.NoError(t, err)
	kinds := map[domain.NotificationKind]int{}
	for _, n := range notifications.Notifications {
		kinds[n.Kind]++
	}
	assert.Equal(t, 1, kinds[domain.NotificationBudgetWarning])
	assert.Equal(t, 1, kinds[domain.NotificationBillDue])

	analysis, err := env.client.GetSpendAnalysis(authed(), &SnapshotRequest{})
	require.NoError(t, err)
	assert.True(t, analysis.TotalComparison.CurrentTotal.Equal(d("420")))
	assert.True(t, analysis.TotalComparison.PreviousTotal.Equal(d("40")))

	strategy, err := env.client.GetDebtStrategy(authed(), &SnapshotRequest{})
	require.NoError(t, err)
	require.Len(t, strategy.MonthlyAllocation, 1)
	assert.True(t, strategy.MonthlyAllocation[0].Amount.Equal(d("120")))
}

func TestServer_StoreSelection(t *testing.T) {
	env := newTestEnv(t)

	overview, err := env.client.GetOverview(authed(StoreMetadataKey, "empty"), &OverviewRequest{})
	require.NoError(t, err)
	assert.True(t, overview.Balance.IsZero())

	_, err = env.client.GetOverview(authed(StoreMetadataKey, "missing"), &OverviewRequest{})
	requireCode(t, err, codes.NotFound)
}

func TestServer_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetReport(context.Background(), &SnapshotRequest{})

	requireCode(t, err, codes.Unauthenticated)
	assert.Contains(t, env.logs.String(), "Unauthenticated")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"snapshot not found", fmt.Errorf("failed to load snapshot: %w", domain.ErrSnapshotNotFound), codes.NotFound},
		{"wallet not found", fmt.Errorf("wallet %q: %w", "x", domain.ErrWalletNotFound), codes.NotFound},
		{"debt not found", domain.ErrDebtNotFound, codes.NotFound},
		{"budget not found", domain.ErrBudgetNotFound, codes.NotFound},
		{"transaction not found", domain.ErrTransactionNotFound, codes.NotFound},
		{"missing snapshot", domain.ErrNoSnapshotInContext, codes.Internal},
		{"validation", errors.New("debt name cannot be empty"), codes.InvalidArgument},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unknown", errors.New("disk on fire"), codes.Internal},
		{"already a status", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(mapError(tt.err)))
		})
	}

	assert.NoError(t, mapError(nil))
}
