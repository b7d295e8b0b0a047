package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_RunsEmbeddedDir(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, "migrations", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	boom := errors.New("boom")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom }

	err = Migrate(context.Background(), db)
	assert.ErrorIs(t, err, boom)
}

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/00001_create_users.sql")

	body, err := fs.ReadFile(migrations, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "UNIQUE (email)")
	assert.Contains(t, string(body), "-- +goose Down")
}

func TestConfigurePool(t *testing.T) {
	raw, _, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	defer db.Close()

	configurePool(db, Config{MaxConns: 3, Timeout: time.Second})
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), Config{Driver: "nope", DSN: "x", Timeout: time.Second})
	assert.Error(t, err)
}
