package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/budget"
	"github.com/simaogato/darkmoney-backend/internal/usecase/dashboard"
	"github.com/simaogato/darkmoney-backend/internal/usecase/debtplanner"
	"github.com/simaogato/darkmoney-backend/internal/usecase/settlement"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

// ServiceName is the fully qualified name of the analytics service
const ServiceName = "darkmoney.v1.AnalyticsService"

const (
	AnalyticsService_GetReport_FullMethodName          = "/" + ServiceName + "/GetReport"
	AnalyticsService_GetOverview_FullMethodName        = "/" + ServiceName + "/GetOverview"
	AnalyticsService_GetBudgetProgress_FullMethodName  = "/" + ServiceName + "/GetBudgetProgress"
	AnalyticsService_GetSpendAnalysis_FullMethodName   = "/" + ServiceName + "/GetSpendAnalysis"
	AnalyticsService_GetDebtPayoff_FullMethodName      = "/" + ServiceName + "/GetDebtPayoff"
	AnalyticsService_GetDebtStrategy_FullMethodName    = "/" + ServiceName + "/GetDebtStrategy"
	AnalyticsService_GetSettlementPlan_FullMethodName  = "/" + ServiceName + "/GetSettlementPlan"
	AnalyticsService_GetSuggestions_FullMethodName     = "/" + ServiceName + "/GetSuggestions"
	AnalyticsService_GetNotifications_FullMethodName   = "/" + ServiceName + "/GetNotifications"
	AnalyticsService_GetNextDueDate_FullMethodName     = "/" + ServiceName + "/GetNextDueDate"
	AnalyticsService_ExportTransactions_FullMethodName = "/" + ServiceName + "/ExportTransactions"
)

// StoreMetadataKey selects the snapshot store a call runs against
const StoreMetadataKey = "x-store-name"

// SnapshotRequest is the request of every call that only needs the loaded snapshot
type SnapshotRequest struct{}

type OverviewRequest struct {
	Period string `json:"period"`
}

type BudgetProgressRequest struct {
	// BudgetID restricts the response to one budget; empty returns every budget
	BudgetID string `json:"budgetId,omitempty"`
}

type BudgetProgressResponse struct {
	Budgets []budget.Progress `json:"budgets"`
}

type DebtPayoffRequest struct {
	DebtID string `json:"debtId"`
}

type SettlementPlanRequest struct {
	WalletID string `json:"walletId"`
}

type SuggestionsResponse struct {
	Suggestions []domain.SmartSuggestion `json:"suggestions"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

type NextDueDateRequest struct {
	TransactionID string `json:"transactionId"`
}

type NextDueDateResponse struct {
	NextDueDate string `json:"nextDueDate,omitempty"`
	Applicable  bool   `json:"applicable"`
}

// ExportResponse carries a rendered export; Data is base64 in the JSON encoding
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// AnalyticsServiceServer is the server API for the analytics service
type AnalyticsServiceServer interface {
	GetReport(context.Context, *SnapshotRequest) (*dashboard.Report, error)
	GetOverview(context.Context, *OverviewRequest) (*dashboard.Overview, error)
	GetBudgetProgress(context.Context, *BudgetProgressRequest) (*BudgetProgressResponse, error)
	GetSpendAnalysis(context.Context, *SnapshotRequest) (*trend.SpendAnalysis, error)
	GetDebtPayoff(context.Context, *DebtPayoffRequest) (*debtplanner.Payoff, error)
	GetDebtStrategy(context.Context, *SnapshotRequest) (*debtplanner.Strategy, error)
	GetSettlementPlan(context.Context, *SettlementPlanRequest) (*settlement.Plan, error)
	GetSuggestions(context.Context, *SnapshotRequest) (*SuggestionsResponse, error)
	GetNotifications(context.Context, *SnapshotRequest) (*NotificationsResponse, error)
	GetNextDueDate(context.Context, *NextDueDateRequest) (*NextDueDateResponse, error)
	ExportTransactions(context.Context, *SnapshotRequest) (*ExportResponse, error)
}

// RegisterAnalyticsServiceServer registers srv on s
func RegisterAnalyticsServiceServer(s grpc.ServiceRegistrar, srv AnalyticsServiceServer) {
	s.RegisterService(&AnalyticsService_ServiceDesc, srv)
}

// AnalyticsService_ServiceDesc describes the analytics service for grpc.Server.
// Messages travel as JSON, see JSONCodecName.
var AnalyticsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyticsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetReport", Handler: unaryHandler(AnalyticsService_GetReport_FullMethodName, AnalyticsServiceServer.GetReport)},
		{MethodName: "GetOverview", Handler: unaryHandler(AnalyticsService_GetOverview_FullMethodName, AnalyticsServiceServer.GetOverview)},
		{MethodName: "GetBudgetProgress", Handler: unaryHandler(AnalyticsService_GetBudgetProgress_FullMethodName, AnalyticsServiceServer.GetBudgetProgress)},
		{MethodName: "GetSpendAnalysis", Handler: unaryHandler(AnalyticsService_GetSpendAnalysis_FullMethodName, AnalyticsServiceServer.GetSpendAnalysis)},
		{MethodName: "GetDebtPayoff", Handler: unaryHandler(AnalyticsService_GetDebtPayoff_FullMethodName, AnalyticsServiceServer.GetDebtPayoff)},
		{MethodName: "GetDebtStrategy", Handler: unaryHandler(AnalyticsService_GetDebtStrategy_FullMethodName, AnalyticsServiceServer.GetDebtStrategy)},
		{MethodName: "GetSettlementPlan", Handler: unaryHandler(AnalyticsService_GetSettlementPlan_FullMethodName, AnalyticsServiceServer.GetSettlementPlan)},
		{MethodName: "GetSuggestions", Handler: unaryHandler(AnalyticsService_GetSuggestions_FullMethodName, AnalyticsServiceServer.GetSuggestions)},
		{MethodName: "GetNotifications", Handler: unaryHandler(AnalyticsService_GetNotifications_FullMethodName, AnalyticsServiceServer.GetNotifications)},
		{MethodName: "GetNextDueDate", Handler: unaryHandler(AnalyticsService_GetNextDueDate_FullMethodName, AnalyticsServiceServer.GetNextDueDate)},
		{MethodName: "ExportTransactions", Handler: unaryHandler(AnalyticsService_ExportTransactions_FullMethodName, AnalyticsServiceServer.ExportTransactions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "darkmoney/v1/analytics.json",
}

// unaryHandler adapts a typed server method to grpc.MethodHandler
func unaryHandler[Req, Resp any](fullMethod string, call func(AnalyticsServiceServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyticsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AnalyticsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AnalyticsServiceClient is the client API for the analytics service
type AnalyticsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAnalyticsServiceClient creates a client that speaks JSON over cc
func NewAnalyticsServiceClient(cc grpc.ClientConnInterface) *AnalyticsServiceClient {
	return &AnalyticsServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(JSONCodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AnalyticsServiceClient) GetReport(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*dashboard.Report, error) {
	return invoke[dashboard.Report](ctx, c.cc, AnalyticsService_GetReport_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetOverview(ctx context.Context, in *OverviewRequest, opts ...grpc.CallOption) (*dashboard.Overview, error) {
	return invoke[dashboard.Overview](ctx, c.cc, AnalyticsService_GetOverview_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetBudgetProgress(ctx context.Context, in *BudgetProgressRequest, opts ...grpc.CallOption) (*BudgetProgressResponse, error) {
	return invoke[BudgetProgressResponse](ctx, c.cc, AnalyticsService_GetBudgetProgress_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetSpendAnalysis(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*trend.SpendAnalysis, error) {
	return invoke[trend.SpendAnalysis](ctx, c.cc, AnalyticsService_GetSpendAnalysis_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetDebtPayoff(ctx context.Context, in *DebtPayoffRequest, opts ...grpc.CallOption) (*debtplanner.Payoff, error) {
	return invoke[debtplanner.Payoff](ctx, c.cc, AnalyticsService_GetDebtPayoff_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetDebtStrategy(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*debtplanner.Strategy, error) {
	return invoke[debtplanner.Strategy](ctx, c.cc, AnalyticsService_GetDebtStrategy_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetSettlementPlan(ctx context.Context, in *SettlementPlanRequest, opts ...grpc.CallOption) (*settlement.Plan, error) {
	return invoke[settlement.Plan](ctx, c.cc, AnalyticsService_GetSettlementPlan_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetSuggestions(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SuggestionsResponse, error) {
	return invoke[SuggestionsResponse](ctx, c.cc, AnalyticsService_GetSuggestions_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetNotifications(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*NotificationsResponse, error) {
	return invoke[NotificationsResponse](ctx, c.cc, AnalyticsService_GetNotifications_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) GetNextDueDate(ctx context.Context, in *NextDueDateRequest, opts ...grpc.CallOption) (*NextDueDateResponse, error) {
	return invoke[NextDueDateResponse](ctx, c.cc, AnalyticsService_GetNextDueDate_FullMethodName, in, opts)
}

func (c *AnalyticsServiceClient) ExportTransactions(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, AnalyticsService_ExportTransactions_FullMethodName, in, opts)
}
