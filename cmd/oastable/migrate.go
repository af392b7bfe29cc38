package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable/internal/cli"
	"github.com/oastable/oastable/internal/samplegen"
	"github.com/oastable/oastable/pkg/store"
)

var (
	migrateSpec   string
	migrateDB     string
	migrateDryRun bool
	migrateSeed   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the compiled schema to a database",
	Long: `Compile an OpenAPI document and apply the resulting tables to the
configured database. Emitted statements use CREATE TABLE IF NOT EXISTS, so
migration is idempotent.`,
	Example: `  # Apply to SQLite
  oastable migrate --spec api/openapi.yaml --db sqlite://api.db

  # Apply to PostgreSQL and insert one sample row per table
  oastable migrate --spec api/openapi.yaml --db postgres://localhost/api --seed

  # Preview SQL without applying
  oastable migrate --spec api/openapi.yaml --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := compileDocument(migrateSpec)
		if err != nil {
			return err
		}
		printWarnings(result.Warnings)

		if migrateDryRun {
			dialect, err := resolveDialect("")
			if err != nil {
				return cli.ConfigError("resolving dialect", err)
			}
			fmt.Print(strings.Join(result.DDL(dialect), ";\n\n") + ";\n")
			return nil
		}

		url, err := databaseURL(migrateDB)
		if err != nil {
			return err
		}
		db, dialect, err := cli.OpenDatabase(cmd.Context(), url)
		if err != nil {
			return cli.DBConnectError("opening database", err)
		}
		defer func() { _ = db.Close() }()

		st := store.New(db, dialect)
		if err := st.Apply(cmd.Context(), result.DDL(dialect)); err != nil {
			return cli.GeneralError("applying schema", err)
		}
		if !quiet {
			fmt.Printf("Applied %d tables.\n", len(result.Tables))
		}

		if migrateSeed {
			rows := samplegen.Rows(result.Tables)
			if err := st.InsertSamples(cmd.Context(), rows); err != nil {
				return cli.GeneralError("inserting sample rows", err)
			}
			if !quiet {
				fmt.Printf("Inserted %d sample rows.\n", len(rows))
			}
		}

		return nil
	},
}

// databaseURL resolves the connection string: flag > config.
func databaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	url, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("resolving database URL", err)
	}
	return url, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateSpec, "spec", "", "path to OpenAPI document")
	migrateCmd.Flags().StringVar(&migrateDB, "db", "", "database URL (postgres:// or sqlite://)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "print SQL without applying")
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "insert one sample row per table")
}
