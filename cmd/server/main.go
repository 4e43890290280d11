// Command sixcities-server serves the Six Cities REST API backed by PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/six-cities/internal/cache"
	"github.com/and161185/six-cities/internal/config"
	"github.com/and161185/six-cities/internal/health"
	"github.com/and161185/six-cities/internal/limiter"
	"github.com/and161185/six-cities/internal/migrate"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/repository/postgres"
	httpserver "github.com/and161185/six-cities/internal/server/http"
	"github.com/and161185/six-cities/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, migrates the schema and runs the HTTP and health servers.
func main() {
	cfgFile := flag.String("config", "", "config file (default ./sixcities.yaml)")
	flag.Parse()

	cfg, err := config.LoadServer(config.New(*cfgFile))
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	if cfg.Debug {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("http", cfg.HTTP.Addr),
		zap.String("grpc", cfg.GRPC.Addr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Postgres.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer db.Close()

	checks := map[string]health.Pinger{"postgres": db}

	var offerCache service.OfferCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		offers := cache.NewOffers(rdb, cfg.Redis.TTL, logger)
		// Lists cached before the migrations ran may be stale.
		offers.Invalidate(ctx, model.CityTitles()...)
		offerCache = offers
		checks["redis"] = health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	lim := limiter.NewPG(db.Pool, cfg.Limiter.Window, cfg.Limiter.MaxFails, cfg.Limiter.BlockFor)
	authSvc := service.NewAuthService(postgres.NewUserRepo(db), []byte(cfg.Security.JWTKey), cfg.Security.AccessTTL, lim)
	offerSvc := service.NewOfferService(postgres.NewOfferRepo(db), postgres.NewCommentRepo(db), offerCache)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpserver.New(authSvc, offerSvc, logger).Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	hs := health.NewServer(logger, checks)
	go hs.Watch(ctx, cfg.GRPC.ProbeInterval)
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("health listening", zap.String("addr", cfg.GRPC.Addr))
		errCh <- hs.Serve(lis)
	}()
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	hs.Stop(5 * time.Second)
	logger.Info("shutdown complete")
}
