package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/aggregator"
	"github.com/simaogato/darkmoney-backend/internal/usecase/budget"
	"github.com/simaogato/darkmoney-backend/internal/usecase/dashboard"
	"github.com/simaogato/darkmoney-backend/internal/usecase/debtplanner"
	"github.com/simaogato/darkmoney-backend/internal/usecase/notification"
	"github.com/simaogato/darkmoney-backend/internal/usecase/settlement"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

// Server implements the AnalyticsService gRPC server.
// Every handler reads the snapshot attached by SnapshotInterceptor and panics
// without one; RecoveryInterceptor turns that into codes.Internal.
type Server struct {
	DashboardService *dashboard.DashboardService
}

var _ AnalyticsServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(dashboardService *dashboard.DashboardService) *Server {
	return &Server{
		DashboardService: dashboardService,
	}
}

// GetReport handles the GetReport RPC
func (s *Server) GetReport(ctx context.Context, req *SnapshotRequest) (*dashboard.Report, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	report := s.DashboardService.BuildReport(snap, s.DashboardService.Now())
	return &report, nil
}

// GetOverview handles the GetOverview RPC; an empty period means month
func (s *Server) GetOverview(ctx context.Context, req *OverviewRequest) (*dashboard.Overview, error) {
	period := aggregator.Period(strings.ToLower(req.Period))
	if period == "" {
		period = aggregator.PeriodMonth
	}
	if !period.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "invalid period %q: must be day, week, month or year", req.Period)
	}

	snap := domain.MustSnapshotFromContext(ctx)

	overview := s.DashboardService.Overview(snap, period, s.DashboardService.Now())
	return &overview, nil
}

// GetBudgetProgress handles the GetBudgetProgress RPC
func (s *Server) GetBudgetProgress(ctx context.Context, req *BudgetProgressRequest) (*BudgetProgressResponse, error) {
	snap := domain.MustSnapshotFromContext(ctx)
	now := s.DashboardService.Now()

	if req.BudgetID == "" {
		return &BudgetProgressResponse{Budgets: s.DashboardService.BudgetProgress(snap, now)}, nil
	}

	b, err := snap.Budget(req.BudgetID)
	if err != nil {
		return nil, mapError(err)
	}
	return &BudgetProgressResponse{Budgets: []budget.Progress{budget.GetProgress(*b, snap.Transactions, now)}}, nil
}

// GetSpendAnalysis handles the GetSpendAnalysis RPC
func (s *Server) GetSpendAnalysis(ctx context.Context, req *SnapshotRequest) (*trend.SpendAnalysis, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	analysis := s.DashboardService.SpendAnalysis(snap, s.DashboardService.Now())
	return &analysis, nil
}

// GetDebtPayoff handles the GetDebtPayoff RPC
func (s *Server) GetDebtPayoff(ctx context.Context, req *DebtPayoffRequest) (*debtplanner.Payoff, error) {
	if req.DebtID == "" {
		return nil, status.Error(codes.InvalidArgument, "debt_id is required")
	}

	snap := domain.MustSnapshotFromContext(ctx)

	payoff, err := s.DashboardService.DebtPayoff(snap, req.DebtID, s.DashboardService.Now())
	if err != nil {
		return nil, mapError(err)
	}
	return &payoff, nil
}

// GetDebtStrategy handles the GetDebtStrategy RPC
func (s *Server) GetDebtStrategy(ctx context.Context, req *SnapshotRequest) (*debtplanner.Strategy, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	strategy := s.DashboardService.DebtStrategy(snap, s.DashboardService.Now())
	return &strategy, nil
}

// GetSettlementPlan handles the GetSettlementPlan RPC
func (s *Server) GetSettlementPlan(ctx context.Context, req *SettlementPlanRequest) (*settlement.Plan, error) {
	if req.WalletID == "" {
		return nil, status.Error(codes.InvalidArgument, "wallet_id is required")
	}

	snap := domain.MustSnapshotFromContext(ctx)

	plan, err := s.DashboardService.Settlement(snap, req.WalletID)
	if err != nil {
		return nil, mapError(err)
	}
	return &plan, nil
}

// GetSuggestions handles the GetSuggestions RPC
func (s *Server) GetSuggestions(ctx context.Context, req *SnapshotRequest) (*SuggestionsResponse, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	return &SuggestionsResponse{
		Suggestions: s.DashboardService.SmartSuggestions(snap, s.DashboardService.Now()),
	}, nil
}

// GetNotifications handles the GetNotifications RPC
func (s *Server) GetNotifications(ctx context.Context, req *SnapshotRequest) (*NotificationsResponse, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	return &NotificationsResponse{
		Notifications: s.DashboardService.Notifications(snap, s.DashboardService.Now()),
	}, nil
}

// GetNextDueDate handles the GetNextDueDate RPC.
// A transaction without recurrence is not an error: Applicable is false.
func (s *Server) GetNextDueDate(ctx context.Context, req *NextDueDateRequest) (*NextDueDateResponse, error) {
	if req.TransactionID == "" {
		return nil, status.Error(codes.InvalidArgument, "transaction_id is required")
	}

	snap := domain.MustSnapshotFromContext(ctx)

	tx, err := snap.Transaction(req.TransactionID)
	if err != nil {
		return nil, mapError(err)
	}

	next, ok := notification.NextDueDate(*tx)
	return &NextDueDateResponse{NextDueDate: next, Applicable: ok}, nil
}

// ExportTransactions handles the ExportTransactions RPC
func (s *Server) ExportTransactions(ctx context.Context, req *SnapshotRequest) (*ExportResponse, error) {
	snap := domain.MustSnapshotFromContext(ctx)

	exported, err := s.DashboardService.ExportTransactions(snap, s.DashboardService.Now())
	if err != nil {
		return nil, mapError(err)
	}
	return &ExportResponse{
		Filename:    exported.Filename,
		ContentType: exported.ContentType,
		Data:        exported.Data,
	}, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrDebtNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	case errors.Is(err, domain.ErrNoSnapshotInContext):
		return status.Errorf(codes.Internal, "%s", errorMsg)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", errorMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", errorMsg)
	}

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must be") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "must reference") ||
		strings.Contains(errorMsg, "cannot be") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
