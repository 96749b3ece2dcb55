package cmd

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION", filepath.Join(t.TempDir(), "goals.db"))

	var driver string
	err := withDatabase(func(db *sql.DB, d string) error {
		driver = d
		return db.Ping()
	})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", driver)

	boom := errors.New("boom")
	err = withDatabase(func(*sql.DB, string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestMigrateUpAndStatus(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION", filepath.Join(t.TempDir(), "goals.db"))

	migrate := MigrateCmd()
	migrate.SetArgs([]string{"up"})
	require.NoError(t, migrate.Execute())

	migrate.SetArgs([]string{"status"})
	require.NoError(t, migrate.Execute())
}
