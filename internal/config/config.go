// Package config loads application configuration from an optional YAML file,
// environment variables, and command line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	FulfillmentAddress string
	TokenSecret        string
	AuthStrategy       string
	StartingGrant      int64
	OrderPollInterval  time.Duration
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	MaxOrdersBatch     int
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultAuthStrategy      = "hmac"
	defaultStartingGrant     = 100
	defaultOrderPollInterval = 3 * time.Second
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxOrdersBatch    = 32
)

// fileConfig mirrors the YAML configuration file layout.
type fileConfig struct {
	RunAddress         string `yaml:"run_address"`
	DatabaseURI        string `yaml:"database_uri"`
	FulfillmentAddress string `yaml:"fulfillment_address"`
	TokenSecret        string `yaml:"token_secret"`
	AuthStrategy       string `yaml:"auth_strategy"`
	StartingGrant      *int64 `yaml:"starting_grant"`
	OrderPollInterval  string `yaml:"order_poll_interval"`
	WorkerPoolSize     *int   `yaml:"worker_pool_size"`
	ShutdownTimeout    string `yaml:"shutdown_timeout"`
	MaxOrdersBatch     *int   `yaml:"max_orders_batch"`
}

// Load parses configuration from the optional file, flags and environment.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        defaultRunAddress,
		TokenSecret:       defaultTokenSecret,
		AuthStrategy:      defaultAuthStrategy,
		StartingGrant:     defaultStartingGrant,
		OrderPollInterval: defaultOrderPollInterval,
		WorkerPoolSize:    defaultWorkerPoolSize,
		ShutdownTimeout:   defaultShutdownTimeout,
		MaxOrdersBatch:    defaultMaxOrdersBatch,
	}

	if path := getString(lookup, "CONFIG_FILE", ""); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getString(lookup, "DATABASE_URI", cfg.DatabaseURI)
	cfg.FulfillmentAddress = getString(lookup, "FULFILLMENT_ADDRESS", cfg.FulfillmentAddress)
	cfg.TokenSecret = getString(lookup, "TOKEN_SECRET", cfg.TokenSecret)
	cfg.AuthStrategy = getString(lookup, "AUTH_STRATEGY", cfg.AuthStrategy)
	cfg.StartingGrant = getInt64(lookup, "STARTING_GRANT", cfg.StartingGrant)
	cfg.OrderPollInterval = getDuration(lookup, "ORDER_POLL_INTERVAL", cfg.OrderPollInterval)
	cfg.WorkerPoolSize = getInt(lookup, "WORKER_POOL_SIZE", cfg.WorkerPoolSize)
	cfg.ShutdownTimeout = getDuration(lookup, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxOrdersBatch = getInt(lookup, "POLL_BATCH_SIZE", cfg.MaxOrdersBatch)

	fs := flag.NewFlagSet("ecotrade", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.OrderPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.FulfillmentAddress, "f", cfg.FulfillmentAddress, "Fulfillment service base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: hmac or jwt")
	fs.Int64Var(&cfg.StartingGrant, "starting-grant", cfg.StartingGrant, "Points granted to new accounts")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent status workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between fulfillment polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxOrdersBatch, "poll-batch", cfg.MaxOrdersBatch, "Maximum orders per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.AuthStrategy != "hmac" && cfg.AuthStrategy != "jwt" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.StartingGrant < 0 {
		cfg.StartingGrant = defaultStartingGrant
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxOrdersBatch <= 0 {
		cfg.MaxOrdersBatch = defaultMaxOrdersBatch
	}

	if cfg.OrderPollInterval <= 0 {
		cfg.OrderPollInterval = defaultOrderPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.FulfillmentAddress == "" {
		return nil, fmt.Errorf("fulfillment address must be provided")
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.RunAddress != "" {
		cfg.RunAddress = fc.RunAddress
	}
	if fc.DatabaseURI != "" {
		cfg.DatabaseURI = fc.DatabaseURI
	}
	if fc.FulfillmentAddress != "" {
		cfg.FulfillmentAddress = fc.FulfillmentAddress
	}
	if fc.TokenSecret != "" {
		cfg.TokenSecret = fc.TokenSecret
	}
	if fc.AuthStrategy != "" {
		cfg.AuthStrategy = fc.AuthStrategy
	}
	if fc.StartingGrant != nil {
		cfg.StartingGrant = *fc.StartingGrant
	}
	if fc.OrderPollInterval != "" {
		d, err := time.ParseDuration(fc.OrderPollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll interval in config file: %w", err)
		}
		cfg.OrderPollInterval = d
	}
	if fc.WorkerPoolSize != nil {
		cfg.WorkerPoolSize = *fc.WorkerPoolSize
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout in config file: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if fc.MaxOrdersBatch != nil {
		cfg.MaxOrdersBatch = *fc.MaxOrdersBatch
	}
	return nil
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

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
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
