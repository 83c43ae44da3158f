package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionStringFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "studio")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "outfits")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	connStr, err := connectionString(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=studio password=secret dbname=outfits sslmode=disable", connStr)
}

func TestConnectionStringRequiresVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := connectionString(DriverPostgres)
	assert.Error(t, err)
}

func TestConnectionStringSQLite(t *testing.T) {
	t.Setenv("SQLITE_PATH", "/tmp/cart.db")
	connStr, err := connectionString(DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cart.db", connStr)

	_, err = connectionString("mongo")
	assert.Error(t, err)
}

func TestEnsureSchema(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cart_items").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), database))
	require.NoError(t, mock.ExpectationsWereMet())
}
