package main

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"rep-lookup/internal/compose"
	"rep-lookup/internal/directory"

	"github.com/charmbracelet/log"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type config struct {
	listenAddr       string
	directoryURL     string
	directoryTimeout time.Duration
	emailDomain      string
	logLevel         log.Level

	rateEnabled     bool
	rateLimit       int
	rateWindow      time.Duration
	rateMaxKeys     int
	rateCleanup     time.Duration
	rateKeyHeader   string
	trustXFF        bool
	rateStore       string
	rateRedisAddr   string
	rateRedisPass   string
	rateRedisDB     int
	rateRedisPrefix string

	concurrencyMax     int
	concurrencyTimeout time.Duration

	rateStatsEnabled       bool
	rateStatsBackend       string
	rateStatsRedisAddr     string
	rateStatsRedisPassword string
	rateStatsRedisDB       int
	rateStatsPrefix        string
	rateStatsTTL           time.Duration
	rateStatsBucket        string
	rateStatsTrackKeys     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.directoryURL = getenvDefault("DIRECTORY_URL", directory.DefaultBaseURL)
	cfg.directoryTimeout = getenvDurationDefault("DIRECTORY_TIMEOUT", 10*time.Second)
	cfg.emailDomain = getenvDefault("EMAIL_DOMAIN", compose.DefaultDomain)

	lvl, err := log.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return config{}, errors.New("LOG_LEVEL must be one of debug, info, warn, error, fatal")
	}
	cfg.logLevel = lvl

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateLimit = getenvIntDefault("RATE_LIMIT", 10)
	cfg.rateWindow = getenvDurationDefault("RATE_WINDOW", time.Minute)
	cfg.rateMaxKeys = getenvIntDefault("RATE_MAX_KEYS", 1000)
	cfg.rateCleanup = getenvDurationDefault("RATE_CLEANUP_EVERY", 0)
	cfg.rateKeyHeader = os.Getenv("RATE_KEY_HEADER")
	// o proxy da plataforma de hospedagem preenche o X-Forwarded-For
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", true)
	cfg.rateStore = strings.ToLower(getenvDefault("RATE_STORE", storeMemory))
	cfg.rateRedisAddr = os.Getenv("RATE_REDIS_ADDR")
	cfg.rateRedisPass = os.Getenv("RATE_REDIS_PASSWORD")
	cfg.rateRedisDB = getenvIntDefault("RATE_REDIS_DB", 0)
	cfg.rateRedisPrefix = getenvDefault("RATE_REDIS_PREFIX", "lookup:ratelimit")

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.rateStatsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.rateStatsBackend = strings.ToLower(getenvDefault("RATE_STATS_BACKEND", storeMemory))
	cfg.rateStatsRedisAddr = os.Getenv("RATE_STATS_REDIS_ADDR")
	cfg.rateStatsRedisPassword = os.Getenv("RATE_STATS_REDIS_PASSWORD")
	cfg.rateStatsRedisDB = getenvIntDefault("RATE_STATS_REDIS_DB", 0)
	cfg.rateStatsPrefix = getenvDefault("RATE_STATS_PREFIX", "lookup:stats")
	cfg.rateStatsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.rateStatsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.rateStatsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	if u, err := url.Parse(cfg.directoryURL); err != nil || u.Scheme == "" || u.Host == "" {
		return config{}, errors.New("DIRECTORY_URL must be an absolute URL")
	}
	if cfg.directoryTimeout <= 0 {
		return config{}, errors.New("DIRECTORY_TIMEOUT must be > 0")
	}
	if cfg.rateLimit <= 0 {
		return config{}, errors.New("RATE_LIMIT must be > 0")
	}
	if cfg.rateWindow <= 0 {
		return config{}, errors.New("RATE_WINDOW must be > 0")
	}
	if cfg.rateMaxKeys <= 0 {
		return config{}, errors.New("RATE_MAX_KEYS must be > 0")
	}
	switch cfg.rateStore {
	case storeMemory:
	case storeRedis:
		if strings.TrimSpace(cfg.rateRedisAddr) == "" {
			return config{}, errors.New("RATE_REDIS_ADDR is required when RATE_STORE=redis")
		}
	default:
		return config{}, errors.New("RATE_STORE must be memory or redis")
	}
	if cfg.rateStatsEnabled {
		switch cfg.rateStatsBackend {
		case storeMemory:
		case storeRedis:
			if strings.TrimSpace(cfg.rateStatsRedisAddr) == "" {
				return config{}, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_BACKEND=redis")
			}
		default:
			return config{}, errors.New("RATE_STATS_BACKEND must be memory or redis")
		}
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
