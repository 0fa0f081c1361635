package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rep-lookup/internal/directory"
	"rep-lookup/internal/httpapi"
	"rep-lookup/middleware/ratelimit"
	"rep-lookup/middleware/ratelimit/domain"
	"rep-lookup/middleware/ratelimit/infra"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "lookup",
	})

	cfg, err := readConfig()
	if err != nil {
		logger.Fatal("config error", "err", err)
	}
	logger.SetLevel(cfg.logLevel)
	log.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store domain.WindowStore
	if cfg.rateEnabled {
		switch cfg.rateStore {
		case storeRedis:
			rdb := mustRedis(logger, cfg.rateRedisAddr, cfg.rateRedisPass, cfg.rateRedisDB)
			defer func() { _ = rdb.Close() }()
			store = infra.NewRedisStore(rdb, cfg.rateLimit, cfg.rateWindow, infra.WithRedisPrefix(cfg.rateRedisPrefix))
		default:
			mem := infra.NewStore(cfg.rateLimit, cfg.rateWindow,
				infra.WithMaxKeys(cfg.rateMaxKeys),
				infra.WithCleanupEvery(cfg.rateCleanup),
			)
			mem.StartJanitor(ctx)
			store = mem
		}
	}

	var (
		statsStore  domain.StatsStore
		statsReader httpapi.StatsReader
	)
	if cfg.rateStatsEnabled {
		switch cfg.rateStatsBackend {
		case storeRedis:
			rdb := mustRedis(logger, cfg.rateStatsRedisAddr, cfg.rateStatsRedisPassword, cfg.rateStatsRedisDB)
			defer func() { _ = rdb.Close() }()
			rs := infra.NewRedisStatsStore(
				rdb,
				infra.WithStatsPrefix(cfg.rateStatsPrefix),
				infra.WithStatsTTL(cfg.rateStatsTTL),
				infra.WithStatsBucket(cfg.rateStatsBucket),
				infra.WithStatsTrackKeys(cfg.rateStatsTrackKeys),
			)
			statsStore, statsReader = rs, rs
		default:
			ms := infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.rateStatsTrackKeys))
			statsStore, statsReader = ms, ms
		}
	}

	dir := directory.NewClient(cfg.directoryURL,
		directory.WithTimeout(cfg.directoryTimeout),
		directory.WithLogger(logger.WithPrefix("directory")),
	)

	apiOpts := []httpapi.Option{
		httpapi.WithEmailDomain(cfg.emailDomain),
		httpapi.WithLogger(logger),
	}
	if statsReader != nil {
		apiOpts = append(apiOpts, httpapi.WithStats(statsReader))
	}
	api := httpapi.New(dir, apiOpts...)

	var limit []func(http.Handler) http.Handler
	if cfg.rateEnabled {
		limit = append(limit, ratelimit.Middleware(ratelimit.Options{
			Store:              store,
			Stats:              statsStore,
			KeyHeader:          cfg.rateKeyHeader,
			TrustXForwardedFor: cfg.trustXFF,
			Logger:             logger,
		}))
	}

	h := http.Handler(api.Routes(limit...))
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
	})(h)
	h = httpapi.AccessLog(logger)(h)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.listenAddr, "directory", cfg.directoryURL)
	logger.Info("rate", "enabled", cfg.rateEnabled, "store", cfg.rateStore, "limit", cfg.rateLimit, "window", cfg.rateWindow, "maxKeys", cfg.rateMaxKeys, "trustXFF", cfg.trustXFF)
	logger.Info("rate-stats", "enabled", cfg.rateStatsEnabled, "backend", cfg.rateStatsBackend, "bucket", cfg.rateStatsBucket, "trackKeys", cfg.rateStatsTrackKeys)
	logger.Info("concurrency", "max", cfg.concurrencyMax, "acquireTimeout", cfg.concurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

func mustRedis(logger *log.Logger, addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_, err := rdb.Ping(pingCtx).Result()
	cancel()
	if err != nil {
		logger.Fatal("redis ping error", "addr", addr, "err", err)
	}
	return rdb
}
