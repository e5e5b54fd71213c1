package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/logger"
)

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, it calls the handler with the original context.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if authHeaders[0] != validToken {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// SnapshotInterceptor returns a gRPC unary server interceptor that loads the
// snapshot named by the x-store-name metadata (defaultStore when absent) and
// attaches it to the handler's context.
// A store that was never saved yields status.NotFound.
func SnapshotInterceptor(repo domain.SnapshotRepository, defaultStore string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		storeName := defaultStore
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(StoreMetadataKey); len(values) > 0 && values[0] != "" {
				storeName = values[0]
			}
		}

		snap, err := repo.Load(ctx, storeName)
		if err != nil {
			return nil, mapError(err)
		}

		log := logger.FromContext(ctx).With().Str("store", storeName).Logger()
		ctx = logger.WithContext(ctx, log)
		return handler(domain.WithSnapshot(ctx, snap), req)
	}
}

// LoggingInterceptor returns a gRPC unary server interceptor that attaches log
// to the request context and records the method, status code and latency of every call.
func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		reqLog := log.With().Str("method", info.FullMethod).Logger()

		resp, err := handler(logger.WithContext(ctx, reqLog), req)

		code := status.Code(err)
		event := reqLog.Info()
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.DataLoss:
			event = reqLog.Error().Err(err)
		default:
			event = reqLog.Warn().Err(err)
		}
		event.
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("rpc finished")

		return resp, err
	}
}

// RecoveryInterceptor returns a gRPC unary server interceptor that recovers
// from handler panics and returns status.Internal instead of crashing the server.
func RecoveryInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("error", r).
					Str("method", info.FullMethod).
					Msg("panic recovered")

				if perr, ok := r.(error); ok {
					err = status.Errorf(codes.Internal, "%s", perr.Error())
				} else {
					err = status.Error(codes.Internal, "internal server error")
				}
				resp = nil
			}
		}()

		return handler(ctx, req)
	}
}
