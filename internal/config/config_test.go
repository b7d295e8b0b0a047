package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var (
		cfg    Config
		cfgErr error
	)
	app := &cli.App{
		Name:  "users",
		Flags: Flags(),
		Action: func(c *cli.Context) error {
			cfg, cfgErr = FromContext(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"users"}, args...)))
	return cfg, cfgErr
}

func TestFromContext_Flags(t *testing.T) {
	cfg, err := parse(t,
		"--port", "9090",
		"--store", "postgres",
		"--database-url", "postgres://u:p@localhost/users",
		"--db-driver", "pgx",
		"--db-timeout", "2s",
		"--redis-addr", "localhost:6379",
		"--event-node-id", "7",
		"--log-level", "debug",
	)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, int64(7), cfg.EventNodeID)
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, "debug", cfg.Logger().Level)
}

func TestFromContext_EnvVars(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_DEV", "true")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 7070, cfg.Port)
	assert.True(t, cfg.LogDev)
}

func TestFromContext_FlagBeatsEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("PORT", "7070")

	cfg, err := parse(t, "--port", "6060")
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
}

func validConfig() Config {
	return Config{
		Port:         8080,
		StoreBackend: BackendPostgres,
		DatabaseURL:  "postgres://localhost/users",
		DBDriver:     "postgres",
		DBMaxConns:   5,
		DBTimeout:    5 * time.Second,
		EventNodeID:  1,
		LogLevel:     "info",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "memory needs no database url", mutate: func(c *Config) { c.StoreBackend = BackendMemory; c.DatabaseURL = "" }},
		{name: "postgres needs database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "mongo" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.DBTimeout = 0 }, wantErr: true},
		{name: "node id too large", mutate: func(c *Config) { c.EventNodeID = 1024 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "bad gin mode", mutate: func(c *Config) { c.GinMode = "loud" }, wantErr: true},
		{name: "release gin mode", mutate: func(c *Config) { c.GinMode = "release" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
