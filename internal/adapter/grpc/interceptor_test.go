package grpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/darkmoney-backend/internal/adapter/repository/memory"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/logger"
)

func TestAuthInterceptor(t *testing.T) {
	validToken := "test-token-123"
	interceptor := AuthInterceptor(validToken)

	tests := []struct {
		name           string
		ctx            context.Context
		handlerCalled  bool
		expectedCode   codes.Code
		expectedErrMsg string
	}{
		{
			name: "Valid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", validToken),
			),
			handlerCalled:  true,
			expectedCode:   codes.OK,
			expectedErrMsg: "",
		},
		{
			name: "Invalid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "wrong-token"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "invalid token",
		},
		{
			name:           "Missing Token",
			ctx:            context.Background(),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing metadata",
		},
		{
			name: "Missing Authorization Header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("other-header", "value"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: "/test.Service/Method",
			}

			resp, err := interceptor(tt.ctx, "test-request", info, handler)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "success", resp)
			} else {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok, "error should be a gRPC status")
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedErrMsg)
			}
		})
	}
}

func TestSnapshotInterceptor(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	defaultSnap := domain.NewSnapshot()
	otherSnap := domain.NewSnapshot()
	otherSnap.Debts = []domain.Debt{{ID: "d1", Name: "Loan", Kind: domain.DebtKindLoan}}
	require.NoError(t, repo.Save(context.Background(), "finance_data", defaultSnap))
	require.NoError(t, repo.Save(context.Background(), "other", otherSnap))

	interceptor := SnapshotInterceptor(repo, "finance_data")
	info := &grpc.UnaryServerInfo{FullMethod: AnalyticsService_GetReport_FullMethodName}

	tests := []struct {
		name         string
		ctx          context.Context
		expectedCode codes.Code
		wantDebts    int
	}{
		{
			name:         "Default Store",
			ctx:          context.Background(),
			expectedCode: codes.OK,
			wantDebts:    0,
		},
		{
			name:         "Store From Metadata",
			ctx:          metadata.NewIncomingContext(context.Background(), metadata.Pairs(StoreMetadataKey, "other")),
			expectedCode: codes.OK,
			wantDebts:    1,
		},
		{
			name:         "Unknown Store",
			ctx:          metadata.NewIncomingContext(context.Background(), metadata.Pairs(StoreMetadataKey, "missing")),
			expectedCode: codes.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Snapshot
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				seen = domain.MustSnapshotFromContext(ctx)
				return "success", nil
			}

			_, err := interceptor(tt.ctx, &SnapshotRequest{}, info, handler)

			if tt.expectedCode != codes.OK {
				assert.Equal(t, tt.expectedCode, status.Code(err))
				assert.Nil(t, seen)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, seen)
			assert.Len(t, seen.Debts, tt.wantDebts)
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	buf := &bytes.Buffer{}
	interceptor := LoggingInterceptor(zerolog.New(buf))
	info := &grpc.UnaryServerInfo{FullMethod: AnalyticsService_GetDebtPayoff_FullMethodName}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		l := logger.FromContext(ctx)
		l.Info().Msg("inside handler")
		return nil, status.Error(codes.NotFound, "debt not found")
	}

	_, err := interceptor(context.Background(), &DebtPayoffRequest{DebtID: "x"}, info, handler)

	assert.Equal(t, codes.NotFound, status.Code(err))
	out := buf.String()
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, `"method":"/darkmoney.v1.AnalyticsService/GetDebtPayoff"`)
	assert.Contains(t, out, `"code":"NotFound"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestLoggingInterceptor_InternalErrorsLogAtErrorLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	interceptor := LoggingInterceptor(zerolog.New(buf))
	info := &grpc.UnaryServerInfo{FullMethod: AnalyticsService_GetReport_FullMethodName}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, mapError(errors.New("disk on fire"))
	}

	_, _ = interceptor(context.Background(), &SnapshotRequest{}, info, handler)

	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestRecoveryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: AnalyticsService_GetReport_FullMethodName}

	tests := []struct {
		name        string
		handler     grpc.UnaryHandler
		expectedMsg string
	}{
		{
			name: "Handler Without Snapshot",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return NewServer(nil).GetReport(ctx, req.(*SnapshotRequest))
			},
			expectedMsg: domain.ErrNoSnapshotInContext.Error(),
		},
		{
			name: "Non Error Panic",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				panic("boom")
			},
			expectedMsg: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			interceptor := RecoveryInterceptor(zerolog.New(buf))

			var (
				resp interface{}
				err  error
			)
			require.NotPanics(t, func() {
				resp, err = interceptor(context.Background(), &SnapshotRequest{}, info, tt.handler)
			})

			assert.Nil(t, resp)
			assert.Equal(t, codes.Internal, status.Code(err))
			assert.Equal(t, tt.expectedMsg, status.Convert(err).Message())
			assert.Contains(t, buf.String(), "panic recovered")
			assert.Contains(t, buf.String(), `"method":"/darkmoney.v1.AnalyticsService/GetReport"`)
		})
	}
}

func TestRecoveryInterceptor_PassesThrough(t *testing.T) {
	interceptor := RecoveryInterceptor(zerolog.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: AnalyticsService_GetReport_FullMethodName}

	resp, err := interceptor(context.Background(), &SnapshotRequest{}, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", resp)
}
