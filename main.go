package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-advisor/config"
	httpLayer "loan-advisor/http"
	"loan-advisor/repository"
	"loan-advisor/service"
)

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	loanRepo := repository.NewLoanRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.TTL)
		defer redisCache.Close()
		cache = redisCache
		logger.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		cache = repository.NewMockCache()
		logger.Info("using in-memory cache")
	}

	loanService := service.NewLoanService(cfg.LoanConfigFor("personal"), loanRepo, cache, logger)
	mortgageService := service.NewMortgageService(cfg.Mortgage, logger)
	autoService := service.NewAutoLoanService(cfg.Auto, logger)
	eligibilityService := service.NewEligibilityService(cfg.Eligibility, logger)
	advisorService := service.NewAdvisorService(cfg.Advisor, logger)

	loanHandler := httpLayer.NewLoanHandler(loanService, "personal")
	mortgageHandler := httpLayer.NewMortgageHandler(mortgageService)
	autoHandler := httpLayer.NewAutoLoanHandler(autoService, advisorService)
	eligibilityHandler := httpLayer.NewEligibilityHandler(eligibilityService, advisorService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillInterval)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/types", limited(loanHandler.Types))
	mux.Handle("/loan/calculate", limited(loanHandler.Calculate))
	mux.Handle("/loan/schedule", limited(loanHandler.Schedule))
	mux.Handle("/loan/affordability", limited(loanHandler.Affordability))
	mux.Handle("/loan/compare-terms", limited(loanHandler.CompareTerms))
	mux.Handle("/loan/max-amount", limited(loanHandler.MaxLoanAmount))

	mux.Handle("/mortgage/affordability", limited(mortgageHandler.HomeAffordability))
	mux.Handle("/mortgage/payment", limited(mortgageHandler.Payment))
	mux.Handle("/mortgage/rules", limited(mortgageHandler.Rules))

	mux.Handle("/auto/loan", limited(autoHandler.CarLoan))
	mux.Handle("/auto/compare-terms", limited(autoHandler.CompareTerms))
	mux.Handle("/auto/early-payoff", limited(autoHandler.EarlyPayoff))

	mux.Handle("/eligibility/check", limited(eligibilityHandler.Check))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("server exited")
}
