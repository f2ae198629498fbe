package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ShutdownTimeout time.Duration
	LogLevel        string

	RedisAddress  string
	RedisPassword string
	OrderLockTTL  time.Duration

	MailAPIURL string
	MailAPIKey string
	MailFrom   string
	ShopName   string

	NotifyPollInterval time.Duration
	NotifyWorkers      int
	NotifyBatchSize    int
	NotifyMaxAttempts  int
}

const (
	defaultRunAddress         = ":5000"
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
	defaultOrderLockTTL       = 30 * time.Second
	defaultMailFrom           = "no-reply@electrohub.local"
	defaultShopName           = "ElectroHub"
	defaultNotifyPollInterval = 2 * time.Second
	defaultNotifyWorkers      = 2
	defaultNotifyBatchSize    = 16
	defaultNotifyMaxAttempts  = 5
)

// Load parses configuration from flags, environment variables and an optional
// dotenv file named by ENV_FILE.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withEnvFile layers values from ENV_FILE under the process environment.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, ok := lookup("ENV_FILE")
	if !ok || path == "" {
		return lookup, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		RedisPassword:      getString(lookup, "REDIS_PASSWORD", ""),
		MailAPIURL:         getString(lookup, "MAIL_API_URL", ""),
		MailAPIKey:         getString(lookup, "MAIL_API_KEY", ""),
		MailFrom:           getString(lookup, "MAIL_FROM", defaultMailFrom),
		ShopName:           getString(lookup, "SHOP_NAME", defaultShopName),
		NotifyWorkers:      getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyBatchSize:    getInt(lookup, "NOTIFY_BATCH_SIZE", defaultNotifyBatchSize),
		NotifyMaxAttempts:  getInt(lookup, "NOTIFY_MAX_ATTEMPTS", defaultNotifyMaxAttempts),
	}

	fs := flag.NewFlagSet("electrohub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// env durations are parsed together with flag values below
	var (
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
		lockTTLStr         = getString(lookup, "ORDER_LOCK_TTL", defaultOrderLockTTL.String())
		pollIntervalStr    = getString(lookup, "NOTIFY_POLL_INTERVAL", defaultNotifyPollInterval.String())
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for placement locks")
	fs.StringVar(&lockTTLStr, "lock-ttl", lockTTLStr, "Placement lock TTL")
	fs.StringVar(&cfg.MailAPIURL, "mail-api", cfg.MailAPIURL, "Mail API base URL")
	fs.StringVar(&cfg.MailFrom, "mail-from", cfg.MailFrom, "Sender address for emails")
	fs.StringVar(&pollIntervalStr, "notify-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification workers")
	fs.IntVar(&cfg.NotifyBatchSize, "notify-batch", cfg.NotifyBatchSize, "Maximum notifications per polling batch")
	fs.IntVar(&cfg.NotifyMaxAttempts, "notify-attempts", cfg.NotifyMaxAttempts, "Delivery attempts before a notification is dead")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.OrderLockTTL, err = time.ParseDuration(lockTTLStr); err != nil {
		return nil, fmt.Errorf("invalid lock ttl: %w", err)
	}

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid notify interval: %w", err)
	}

	if keyFile, ok := lookup("MAIL_API_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read mail api key file: %w", err)
		}
		cfg.MailAPIKey = strings.TrimSpace(string(content))
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyMaxAttempts <= 0 {
		cfg.NotifyMaxAttempts = defaultNotifyMaxAttempts
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.OrderLockTTL <= 0 {
		cfg.OrderLockTTL = defaultOrderLockTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
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
