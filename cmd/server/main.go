package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/darkmoney-backend/internal/adapter/cache"
	grpcadapter "github.com/simaogato/darkmoney-backend/internal/adapter/grpc"
	"github.com/simaogato/darkmoney-backend/internal/adapter/repository/memory"
	"github.com/simaogato/darkmoney-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/darkmoney-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/darkmoney-backend/internal/config"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/logger"
	"github.com/simaogato/darkmoney-backend/internal/usecase/dashboard"
	"github.com/simaogato/darkmoney-backend/internal/usecase/seeder"
)

const defaultAPIToken = "dev-token"

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Setup Repository
	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	// 2. Seed the default categories
	if err := seeder.NewSystemSeeder(repo).Seed(ctx, cfg.StoreName); err != nil {
		return fmt.Errorf("failed to seed store %q: %w", cfg.StoreName, err)
	}
	log.Info().Str("store", cfg.StoreName).Msg("store seeded")

	// 3. Initialize Services (Use Cases)
	dashboardService := dashboard.NewDashboardService(repo, cfg.AssumedMonthlyIncome)

	// 4. Start gRPC Server
	apiToken := cfg.APIToken
	if apiToken == "" {
		log.Warn().Msg("API_TOKEN not set, using development token")
		apiToken = defaultAPIToken
	}

	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.RecoveryInterceptor(log),
			grpcadapter.AuthInterceptor(apiToken),
			grpcadapter.SnapshotInterceptor(repo, cfg.StoreName),
		),
	)
	grpcadapter.RegisterAnalyticsServiceServer(grpcServer, grpcadapter.NewServer(dashboardService))
	reflection.Register(grpcServer)

	addr := ":" + cfg.Port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Str("backend", cfg.DataBackend).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("failed to serve gRPC server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully")
		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}

// openRepository builds the snapshot repository selected by DATA_BACKEND,
// wrapped in the Redis cache when REDIS_ADDR is set
func openRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.SnapshotRepository, func(), error) {
	var (
		repo    domain.SnapshotRepository
		closers []io.Closer
	)

	switch cfg.DataBackend {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.Connect(connectCtx, cfg.PostgresConnString(), 2*time.Second)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		repo = postgres.NewSnapshotRepository(db)
		closers = append(closers, db)

	case "sqlite":
		sqliteRepo, err := sqlite.NewSnapshotRepository(cfg.SQLiteDBPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		repo = sqliteRepo
		closers = append(closers, sqliteRepo)

	default:
		repo = memory.NewSnapshotRepository()
	}

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing without cache")
			redisCache.Close()
		} else {
			repo = cache.NewCachedRepository(repo, redisCache, cfg.CacheTTL, log)
			closers = append(closers, redisCache)
			log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("snapshot cache enabled")
		}
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("close failed")
			}
		}
	}
	return repo, closeAll, nil
}
