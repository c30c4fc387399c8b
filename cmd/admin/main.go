package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-admin/config"
	_ "go-candidate-admin/docs" // Important for Swagger
	v1 "go-candidate-admin/internal/delivery/http/v1"
	"go-candidate-admin/internal/notify"
	"go-candidate-admin/internal/repository/httpapi"
	"go-candidate-admin/internal/usecase"
	"go-candidate-admin/pkg/logger"
	"go-candidate-admin/pkg/redis"
	"go-candidate-admin/pkg/security/antivirus"

	"go.uber.org/zap"
)

// @title           Candidate Admin API
// @version         1.0
// @description     JSON helpers behind the candidate management pages.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()
	logger.Log.Info("Starting candidate admin",
		zap.String("port", cfg.Port),
		zap.String("api_base_url", cfg.APIBaseURL),
	)

	// 3. Optional Redis for flash messages and rate limiting
	var flash notify.FlashStore = notify.NewMemoryFlashStore(notify.FlashTTL)
	var redisCheck func(context.Context) error
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory flash and rate limit", zap.Error(err))
		} else {
			flash = notify.NewRedisFlashStore(redis.Client(), notify.FlashTTL)
			redisCheck = redis.HealthCheck
			defer redis.Close()
		}
	}

	// 4. Resume scanner
	var scanner antivirus.Scanner = antivirus.NoOpScanner{}
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewChainScanner(antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second))
		if !scanner.Available(context.Background()) {
			logger.Log.Warn("clamd not reachable, resume uploads will be rejected until it is",
				zap.String("address", cfg.ClamAVAddress))
		}
	}

	// 5. Remote API and usecases
	candidateRepo := httpapi.NewCandidateRepository(cfg.APIBaseURL, httpapi.NewHTTPClient(cfg.APITimeout, cfg.APIInsecureTLS))
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, scanner, cfg.MaxResumeBytes)
	healthUC := usecase.NewHealthUsecase(scanner, redisCheck)

	// 6. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		HealthUC:    healthUC,
		Flash:       flash,
		Redis:       redis.Client(),
		Config:      cfg,
	})
	if err != nil {
		logger.Log.Fatal("Failed to build router", zap.Error(err))
	}

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
