// Package config binds the service settings to command-line flags, each
// of which can also be set through an environment variable.
package config

import (
	"fmt"
	"time"

	"github.com/eaglebank/user-directory/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v2"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port int `validate:"gt=0,lte=65535"`

	StoreBackend string        `validate:"oneof=postgres memory"`
	DatabaseURL  string        `validate:"required_if=StoreBackend postgres"`
	DBDriver     string        `validate:"oneof=postgres pgx"`
	DBMaxConns   int           `validate:"gt=0"`
	DBTimeout    time.Duration `validate:"gt=0"`
	AutoMigrate  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int   `validate:"gte=0"`
	EventNodeID   int64 `validate:"gte=0,lte=1023"`

	LogLevel string `validate:"oneof=debug info warn error"`
	LogDev   bool
	LogFile  string

	GinMode string `validate:"omitempty,oneof=debug release test"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Dev: c.LogDev, File: c.LogFile}
}

// EventsEnabled reports whether user events go to Redis.
func (c Config) EventsEnabled() bool {
	return c.RedisAddr != ""
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "port", Usage: "HTTP listen port", Value: 8080, EnvVars: []string{"PORT"}},
		&cli.StringFlag{Name: "store", Usage: "record store backend (postgres, memory)", Value: BackendPostgres, EnvVars: []string{"STORE_BACKEND"}},
		&cli.StringFlag{Name: "database-url", Usage: "Postgres connection string", EnvVars: []string{"DATABASE_URL"}},
		&cli.StringFlag{Name: "db-driver", Usage: "SQL driver (postgres, pgx)", Value: "postgres", EnvVars: []string{"DB_DRIVER"}},
		&cli.IntFlag{Name: "db-max-conns", Usage: "maximum open DB connections", Value: 5, EnvVars: []string{"DB_MAX_CONNS"}},
		&cli.DurationFlag{Name: "db-timeout", Usage: "DB connect timeout", Value: 5 * time.Second, EnvVars: []string{"DB_TIMEOUT"}},
		&cli.BoolFlag{Name: "auto-migrate", Usage: "apply migrations before serving", EnvVars: []string{"AUTO_MIGRATE"}},
		&cli.StringFlag{Name: "redis-addr", Usage: "Redis address for user events, empty disables them", EnvVars: []string{"REDIS_ADDR"}},
		&cli.StringFlag{Name: "redis-password", Usage: "Redis password", EnvVars: []string{"REDIS_PASSWORD"}},
		&cli.IntFlag{Name: "redis-db", Usage: "Redis database number", EnvVars: []string{"REDIS_DB"}},
		&cli.Int64Flag{Name: "event-node-id", Usage: "snowflake node id for event ids (0-1023)", Value: 1, EnvVars: []string{"EVENT_NODE_ID"}},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		&cli.BoolFlag{Name: "log-dev", Usage: "human readable development logs", EnvVars: []string{"LOG_DEV"}},
		&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file, rotated daily", EnvVars: []string{"LOG_FILE"}},
		&cli.StringFlag{Name: "gin-mode", Usage: "gin mode (debug, release, test)", EnvVars: []string{"GIN_MODE"}},
	}
}

// FromContext reads the flags registered by Flags and validates the result.
func FromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Port:          c.Int("port"),
		StoreBackend:  c.String("store"),
		DatabaseURL:   c.String("database-url"),
		DBDriver:      c.String("db-driver"),
		DBMaxConns:    c.Int("db-max-conns"),
		DBTimeout:     c.Duration("db-timeout"),
		AutoMigrate:   c.Bool("auto-migrate"),
		RedisAddr:     c.String("redis-addr"),
		RedisPassword: c.String("redis-password"),
		RedisDB:       c.Int("redis-db"),
		EventNodeID:   c.Int64("event-node-id"),
		LogLevel:      c.String("log-level"),
		LogDev:        c.Bool("log-dev"),
		LogFile:       c.String("log-file"),
		GinMode:       c.String("gin-mode"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
