package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // errors package is needed to detect server close
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"chainvora/internal/api"        // Custom package for API handlers
	"chainvora/internal/blob"       // Proof file store
	"chainvora/internal/config"     // Custom package for configuration
	"chainvora/internal/db"         // Database access
	"chainvora/internal/directory"  // Wallet identities
	"chainvora/internal/ledger"     // Pool and allocation ledger
	"chainvora/internal/lifecycle"  // Funding request state machine
	"chainvora/internal/middleware" // Custom package for middleware
	"chainvora/internal/progress"   // Milestones and status updates
	"chainvora/internal/timeline"   // Derived views
	"chainvora/internal/utils"      // Redis cache adapter

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set; session tokens are disabled")
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	proofs, err := blob.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to prepare upload dir: %v", err)
	}

	// Build services
	stores := db.NewStores(gdb)
	fundLedger := ledger.New(stores.Ledger, ledger.WithBalanceEnforcement(cfg.EnforceBalance))
	requests := lifecycle.New(stores.Requests, nil)
	identities := directory.New(stores.Identities, directory.Config{
		Cache:       &utils.RedisCache{Client: redisClient}, // Identity lookup cache
		TokenSecret: cfg.JWTSecret,                          // Session token secret
		StrictRoles: cfg.StrictRoles,                        // Role re-registration policy
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(10*time.Minute, stopCleanup)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Ledger:       fundLedger,
		Requests:     requests,
		Directory:    identities,
		Timeline:     timeline.New(fundLedger, requests),
		Progress:     progress.New(stores.Progress, nil),
		Proofs:       proofs,
		UploadDir:    proofs.Dir(),
		TokenSecret:  cfg.JWTSecret,
		EnforceRoles: cfg.EnforceRoles,
		CORSOrigins:  cfg.CORSOrigins,
		Limiter:      limiter,
		AccessLog:    !cfg.IsProd,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":            cfg.AppPort,        // Listen port
			"enforce_balance": cfg.EnforceBalance, // Balance policy
			"strict_roles":    cfg.StrictRoles,    // Role re-registration policy
			"enforce_roles":   cfg.EnforceRoles,   // Role gating
		}).Info("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("Shutting down")
	close(stopCleanup)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown error: %v", err)
	}
	_ = redisClient.Close()
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
