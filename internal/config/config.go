package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Commands understood by the runner binary.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandServe  = "serve"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	Command string

	MongoURI         string        `env:"MONGO_URI"`
	Database         string        `env:"MONGO_DATABASE" env-default:"lms"`
	MigrationTimeout time.Duration `env:"MIGRATION_TIMEOUT" env-default:"10m"`
	Target           string        `env:"MIGRATION_TARGET"`
	Steps            int           `env:"MIGRATION_STEPS" env-default:"1"`

	RedisAddress  string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	LockKey       string        `env:"LOCK_KEY" env-default:"lms:migrations:lock"`
	LockTTL       time.Duration `env:"LOCK_TTL" env-default:"15m"`

	PushgatewayURL string `env:"PUSHGATEWAY_URL"`

	RunAddress           string        `env:"RUN_ADDRESS" env-default:":8080"`
	TokenSecret          string        `env:"TOKEN_SECRET" env-default:"change-me-in-production"`
	TokenSecretFile      string        `env:"TOKEN_SECRET_FILE"`
	TokenTTL             time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	OperatorLogin        string        `env:"OPERATOR_LOGIN" env-default:"operator"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

const (
	defaultMigrationTimeout = 10 * time.Minute
	defaultLockTTL          = 15 * time.Minute
	defaultShutdownTimeout  = 10 * time.Second
	defaultTokenTTL         = time.Hour
	defaultSteps            = 1
)

// Load parses configuration from environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	fs := flag.NewFlagSet("lmsmigrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		timeoutStr  = cfg.MigrationTimeout.String()
		lockTTLStr  = cfg.LockTTL.String()
		shutdownStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.MongoURI, "uri", cfg.MongoURI, "MongoDB connection string")
	fs.StringVar(&cfg.Database, "db", cfg.Database, "MongoDB database name")
	fs.StringVar(&timeoutStr, "timeout", timeoutStr, "Timeout for a whole migration command")
	fs.StringVar(&cfg.Target, "target", cfg.Target, "Last migration to apply on up")
	fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "Number of migrations to revert on down")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the runner lock")
	fs.StringVar(&lockTTLStr, "lock-ttl", lockTTLStr, "Runner lock expiry")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway", cfg.PushgatewayURL, "Prometheus pushgateway URL")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "Admin HTTP listen address")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing operator tokens")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Command = CommandUp
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command = strings.ToLower(rest[0])
	}
	switch cfg.Command {
	case CommandUp, CommandDown, CommandStatus, CommandServe:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	var err error

	if cfg.MigrationTimeout, err = time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("invalid migration timeout: %w", err)
	}

	if cfg.LockTTL, err = time.ParseDuration(lockTTLStr); err != nil {
		return nil, fmt.Errorf("invalid lock ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenSecretFile != "" {
		content, err := os.ReadFile(cfg.TokenSecretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.MigrationTimeout <= 0 {
		cfg.MigrationTimeout = defaultMigrationTimeout
	}

	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.Steps <= 0 {
		cfg.Steps = defaultSteps
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("mongo URI must be provided")
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("database name must be provided")
	}

	return cfg, nil
}
