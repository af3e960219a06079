package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hansardlab/gavel/internal/cache"
	"github.com/hansardlab/gavel/internal/config"
	logpkg "github.com/hansardlab/gavel/internal/logger"
	"github.com/hansardlab/gavel/internal/metrics"
	"github.com/hansardlab/gavel/internal/pg"
	billrepo "github.com/hansardlab/gavel/internal/repository/bill"
	memberrepo "github.com/hansardlab/gavel/internal/repository/member"
	ministryrepo "github.com/hansardlab/gavel/internal/repository/ministry"
	sectionrepo "github.com/hansardlab/gavel/internal/repository/section"
	chiTransport "github.com/hansardlab/gavel/internal/transport/chi"
	billsuc "github.com/hansardlab/gavel/internal/usecase/bills"
	healthuc "github.com/hansardlab/gavel/internal/usecase/health"
	membersuc "github.com/hansardlab/gavel/internal/usecase/members"
	ministriesuc "github.com/hansardlab/gavel/internal/usecase/ministries"
	sectionsuc "github.com/hansardlab/gavel/internal/usecase/sections"
	"github.com/hansardlab/gavel/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gavel HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting gavel API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx := context.Background()

	db, err := pg.Connect(ctx, pg.Config{
		URL:      cfg.Database.URL,
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		logger.Fatal("Failed to connect to corpus database", zap.Error(err))
	}
	defer db.Close()

	// Wait for the corpus database to be ready
	if err := db.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Corpus database not ready", zap.Error(err))
	}
	logger.Info("Connected to corpus database")

	// Response cache is optional: no addrs means every request hits the
	// corpus directly.
	var store *cache.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = cache.NewStore(cache.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create response cache", zap.Error(err))
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Warn("Response cache not ready, running without it", zap.Error(err))
			store.Close()
			store = nil
		} else {
			defer store.Close()
			logger.Info("Connected to response cache")
		}
	}

	// Pass nil interfaces (not typed nil pointers!) when the cache is
	// disabled. Go gotcha: (*cache.Store)(nil) wrapped in cache.Client != nil.
	var cacheClient cache.Client
	var cachePinger healthuc.CachePinger
	if store != nil {
		cacheClient = store
		cachePinger = store
	}

	// Create repositories
	sectionRepo := sectionrepo.New(db)
	billRepo := billrepo.New(db)
	memberRepo := memberrepo.New(db)
	ministryRepo := ministryrepo.New(db)

	// Create use case services
	ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
	sectionsSvc := sectionsuc.New(sectionRepo, cacheClient, ttl)
	billsSvc := billsuc.New(billRepo, cacheClient, ttl)
	membersSvc := membersuc.New(memberRepo, sectionRepo, billRepo, cacheClient, ttl, membersuc.Limits{
		Questions: cfg.Listing.DetailQuestions,
		Bills:     cfg.Listing.DetailBills,
	})
	ministriesSvc := ministriesuc.New(ministryRepo, sectionRepo, billRepo, cacheClient, ttl, ministriesuc.Limits{
		Questions: cfg.Listing.DetailQuestions,
		Bills:     cfg.Listing.DetailBills,
	})
	healthSvc := healthuc.New(db, cachePinger)

	// Create chi server
	server := chiTransport.NewServer(sectionsSvc, billsSvc, membersSvc, ministriesSvc, healthSvc, logger).
		WithPageSizes(cfg.Listing.DefaultPageSize, cfg.Listing.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
