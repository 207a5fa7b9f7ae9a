package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"dealdesk/config"
	httpLayer "dealdesk/http"
	"dealdesk/logger"
	"dealdesk/observability"
	"dealdesk/ratelimit"
	"dealdesk/repository"
	"dealdesk/service"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Str("path", cfgPath).Msg("config error")
	}

	log := logger.New(cfg.Logging.Level)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

func run(cfg *config.AppConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetryOut := io.Discard
	if log.GetLevel() <= zerolog.DebugLevel {
		telemetryOut = os.Stdout
	}
	shutdownTelemetry, err := observability.Init(ctx, telemetryOut)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	var (
		cache        repository.CacheRepository = repository.NewMemoryCache()
		limiterStore ratelimit.Store            = ratelimit.NewMemoryStore()
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}

		cache = repository.NewRedisCache(rdb)
		limiterStore = ratelimit.NewRedisStore(rdb, cfg.Redis.Prefix, cfg.RateLimit.Window)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis for rate limiting and cache")
	}

	limiter, err := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests, ratelimit.WithStore(limiterStore))
	if err != nil {
		return err
	}

	history := repository.NewCalculationRepositoryMemory(cfg.History.Limit)

	loanService := service.NewLoanService(history, cache, cfg.Cache.TTL, log)
	dealService := service.NewDealService(history, cache, cfg.Cache.TTL, log)

	clientIPs, err := httpLayer.NewClientIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}
	if cfg.Admin.Token == "" {
		log.Warn().Msg("admin token not set, reset and history routes are disabled")
	}

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Loan:      httpLayer.NewLoanHandler(loanService, log),
		Deal:      httpLayer.NewDealHandler(dealService, log),
		RateLimit: httpLayer.NewRateLimitHandler(limiter, log),
		History:   httpLayer.NewHistoryHandler(history, log),
	}, httpLayer.RouterConfig{
		Limiter:    limiter,
		ClientIPs:  clientIPs,
		AdminToken: cfg.Admin.Token,
	}, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Dur("window", cfg.RateLimit.Window).
			Int("max_requests", cfg.RateLimit.MaxRequests).
			Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
