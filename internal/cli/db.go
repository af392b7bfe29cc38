package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Database drivers for the two supported dialects.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/oastable/oastable"
)

// ParseDatabaseURL detects the dialect and returns the driver name and
// connection string for sql.Open.
func ParseDatabaseURL(url string) (dialect oastable.Dialect, driver, connStr string, err error) {
	if url == "" {
		return "", "", "", fmt.Errorf("database URL is required")
	}

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return oastable.DialectPostgres, "pgx", url, nil
	}

	if strings.HasPrefix(url, "sqlite://") {
		// Strip sqlite:// prefix to get file path
		return oastable.DialectSQLite, "sqlite3", strings.TrimPrefix(url, "sqlite://"), nil
	}

	return "", "", "", fmt.Errorf("invalid database URL scheme (must start with postgres:// or sqlite://)")
}

// OpenDatabase opens and pings the configured database.
func OpenDatabase(ctx context.Context, url string) (*sql.DB, oastable.Dialect, error) {
	dialect, driver, connStr, err := ParseDatabaseURL(url)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("connecting to database: %w", err)
	}
	return db, dialect, nil
}
