package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable/internal/cli"
	"github.com/oastable/oastable/pkg/vecindex"
)

var (
	indexSpec string
	indexDB   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed field metadata into the vector index",
	Long: `Compile an OpenAPI document and upsert one vector-index record per
field, including fields from skipped polymorphic branches. Record IDs are
stable, so re-indexing an unchanged document replaces rather than duplicates.`,
	Example: `  # Index into the same SQLite database as the tables
  oastable index --spec api/openapi.yaml --db sqlite://api.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := compileDocument(indexSpec)
		if err != nil {
			return err
		}
		printWarnings(result.Warnings)

		url, err := databaseURL(indexDB)
		if err != nil {
			return err
		}
		db, dialect, err := cli.OpenDatabase(cmd.Context(), url)
		if err != nil {
			return cli.DBConnectError("opening database", err)
		}
		defer func() { _ = db.Close() }()

		records := vecindex.RecordsFromFields(result.Fields)
		idx := vecindex.NewSQLIndex(db, dialect)
		if err := idx.Upsert(cmd.Context(), records); err != nil {
			return cli.GeneralError("indexing fields", err)
		}

		if !quiet {
			fmt.Printf("Indexed %d fields.\n", len(records))
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexSpec, "spec", "", "path to OpenAPI document")
	indexCmd.Flags().StringVar(&indexDB, "db", "", "database URL (postgres:// or sqlite://)")
}
