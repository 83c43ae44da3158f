package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB holds the database connection
var DB *sql.DB

// Supported values for DB_DRIVER
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// cartSchema is valid for both PostgreSQL and SQLite
const cartSchema = `
	CREATE TABLE IF NOT EXISTS cart_items (
		user_id    TEXT NOT NULL,
		product_id TEXT NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		price      NUMERIC(12, 2) NOT NULL DEFAULT 0,
		image_url  TEXT NOT NULL DEFAULT '',
		qty        INTEGER NOT NULL DEFAULT 1 CHECK (qty > 0),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, product_id)
	)
`

// InitDB initializes the database connection from environment variables
func InitDB() error {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" || driver == "postgres" {
		driver = DriverPostgres
	}

	connStr, err := connectionString(driver)
	if err != nil {
		return err
	}

	DB, err = sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer
		DB.SetMaxOpenConns(1)
	}

	// Test the connection
	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := EnsureSchema(ctx, DB); err != nil {
		return err
	}

	log.Printf("✓ Database connection established successfully (driver=%s)", driver)
	return nil
}

func connectionString(driver string) (string, error) {
	if driver == DriverSQLite {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "outfit-studio.db"
		}
		return path, nil
	}
	if driver != DriverPostgres {
		return "", fmt.Errorf("unsupported DB_DRIVER %q (use pgx or sqlite)", driver)
	}

	// Get database connection string from environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr != "" {
		return connStr, nil
	}

	// Build connection string from individual variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// EnsureSchema creates the cart table when it does not exist
func EnsureSchema(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, cartSchema); err != nil {
		return fmt.Errorf("failed to create cart_items table: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
