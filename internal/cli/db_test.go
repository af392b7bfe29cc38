package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oastable/oastable"
)

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantDialect oastable.Dialect
		wantDriver  string
		wantConn    string
		wantErr     bool
	}{
		{
			name:        "postgres",
			url:         "postgres://user@localhost/db",
			wantDialect: oastable.DialectPostgres,
			wantDriver:  "pgx",
			wantConn:    "postgres://user@localhost/db",
		},
		{
			name:        "postgresql scheme",
			url:         "postgresql://user@localhost/db",
			wantDialect: oastable.DialectPostgres,
			wantDriver:  "pgx",
			wantConn:    "postgresql://user@localhost/db",
		},
		{
			name:        "sqlite strips scheme",
			url:         "sqlite:///tmp/api.db",
			wantDialect: oastable.DialectSQLite,
			wantDriver:  "sqlite3",
			wantConn:    "/tmp/api.db",
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
		{
			name:    "unknown scheme",
			url:     "mysql://localhost/db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, driver, conn, err := ParseDatabaseURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDialect, dialect)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantConn, conn)
		})
	}
}
