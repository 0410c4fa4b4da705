package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	GameDataAddress   string
	JWTSecret         string
	ReceiptsDir       string
	PointsRate        float64
	TimerPollInterval time.Duration
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	MaxTimersBatch    int
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultReceiptsDir       = "./receipts"
	defaultPointsRate        = 0.05
	defaultTimerPollInterval = 3 * time.Second
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxTimersBatch    = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		GameDataAddress:   getString(lookup, "GAME_DATA_ADDRESS", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		ReceiptsDir:       getString(lookup, "RECEIPTS_DIR", defaultReceiptsDir),
		PointsRate:        getFloat(lookup, "POINTS_RATE", defaultPointsRate),
		TimerPollInterval: getDuration(lookup, "TIMER_POLL_INTERVAL", defaultTimerPollInterval),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxTimersBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxTimersBatch),
	}

	fs := flag.NewFlagSet("rpmarket", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.TimerPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GameDataAddress, "g", cfg.GameDataAddress, "Game data service base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.ReceiptsDir, "receipts-dir", cfg.ReceiptsDir, "Directory for uploaded payment receipts")
	fs.Float64Var(&cfg.PointsRate, "points-rate", cfg.PointsRate, "Loyalty points earned per unit of order total")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent timer workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between expired timer polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxTimersBatch, "poll-batch", cfg.MaxTimersBatch, "Maximum timers per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TimerPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxTimersBatch <= 0 {
		cfg.MaxTimersBatch = defaultMaxTimersBatch
	}

	if cfg.TimerPollInterval <= 0 {
		cfg.TimerPollInterval = defaultTimerPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PointsRate < 0 {
		cfg.PointsRate = defaultPointsRate
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
