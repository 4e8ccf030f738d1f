package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopital/ledger-backend/internal/api"
	"github.com/loopital/ledger-backend/internal/cache"
	"github.com/loopital/ledger-backend/internal/config"
	"github.com/loopital/ledger-backend/internal/database"
	"github.com/loopital/ledger-backend/internal/ledger"
	"github.com/loopital/ledger-backend/internal/repository"
	"github.com/loopital/ledger-backend/internal/scheduler"
	"github.com/loopital/ledger-backend/internal/service"
	"github.com/loopital/ledger-backend/internal/upstream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	projectRepo := repository.NewProjectRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Select cache backend
	var viewCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Cache.RedisAddr, err)
		}
		defer redisCache.Close()
		viewCache = redisCache
		log.Printf("Using Redis cache at %s", cfg.Cache.RedisAddr)
	} else {
		viewCache = cache.NewMemoryCache()
	}

	// Upstream marketplace client
	client := upstream.NewMarketplaceClient(cfg.Upstream.BaseURL, cfg.Upstream.Token)

	policy := ledger.Policy{
		FeeRate:       cfg.Policy.FeeRate,
		MinimumAmount: cfg.Policy.MinimumWithdrawal,
	}
	cacheTTL := time.Duration(cfg.Policy.CacheTTLSeconds) * time.Second

	// Create services
	systemService := service.NewSystemService(db, snapshotRepo)
	portfolioService := service.NewPortfolioService(investmentRepo, projectRepo, snapshotRepo, viewCache, cacheTTL)
	withdrawalService := service.NewWithdrawalService(projectRepo, withdrawalRepo, client, policy, viewCache)
	activityService := service.NewActivityService(transactionRepo, withdrawalRepo)
	refreshService := service.NewRefreshService(db, client, projectRepo, investmentRepo, withdrawalRepo, transactionRepo, snapshotRepo, viewCache)

	// Start the polling scheduler
	sched, err := scheduler.New(refreshService, cfg.Policy.PollSchedule, 30*time.Second)
	if err != nil {
		log.Fatalf("Invalid poll schedule %q: %v", cfg.Policy.PollSchedule, err)
	}
	sched.Start()
	defer sched.Stop()
	log.Printf("Polling marketplace on schedule %q", cfg.Policy.PollSchedule)

	// Create router
	router := api.NewRouter(systemService, portfolioService, withdrawalService, activityService, refreshService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
