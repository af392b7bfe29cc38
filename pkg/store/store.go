// Package store writes compiled schemas and generated sample rows to a SQL
// database through database/sql. It is driver-agnostic: callers open the
// connection (pgx stdlib for PostgreSQL, mattn/go-sqlite3 for SQLite) and
// hand the store anything satisfying Execer.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/oastable/oastable"
)

// Store applies emitted DDL and inserts sample rows.
type Store struct {
	db      Execer
	dialect oastable.Dialect
}

// New creates a Store over an existing database handle.
func New(db Execer, dialect oastable.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Row is a single sample row destined for one operation table. Values line
// up positionally with Columns. Rows carry explicit _row_id values so that
// parent references stay valid without relying on driver last-insert-id
// support.
type Row struct {
	Table   string
	Columns []string
	Values  []any
}

// Apply executes the emitted DDL statements in order. When the underlying
// handle supports transactions the statements are applied atomically.
func (s *Store) Apply(ctx context.Context, ddl []string) error {
	return s.withTx(ctx, func(db Execer) error {
		for i, stmt := range ddl {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying statement %d: %w", i, err)
			}
		}
		return nil
	})
}

// InsertSamples inserts the given rows in order. Parent rows must precede
// the child rows that reference them.
func (s *Store) InsertSamples(ctx context.Context, rows []Row) error {
	return s.withTx(ctx, func(db Execer) error {
		for _, r := range rows {
			if _, err := db.ExecContext(ctx, s.insertSQL(r), r.Values...); err != nil {
				return fmt.Errorf("inserting into %s: %w", r.Table, err)
			}
		}
		return nil
	})
}

// withTx runs fn inside a transaction when the handle supports one,
// falling back to direct execution otherwise.
func (s *Store) withTx(ctx context.Context, fn func(Execer) error) error {
	if txer, ok := s.db.(interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	}); ok {
		tx, err := txer.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	}
	return fn(s.db)
}

func (s *Store) insertSQL(r Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %q (", r.Table)
	for i, c := range r.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", c)
	}
	b.WriteString(") VALUES (")
	for i := range r.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		if s.dialect == oastable.DialectPostgres {
			b.WriteString("$" + strconv.Itoa(i+1))
		} else {
			b.WriteByte('?')
		}
	}
	b.WriteString(")")
	return b.String()
}
