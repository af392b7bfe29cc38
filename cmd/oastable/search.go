package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable/internal/cli"
	"github.com/oastable/oastable/pkg/vecindex"
)

var (
	searchDB    string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed field metadata",
	Long: `Search the vector index by natural-language text and print the
closest fields by cosine similarity.`,
	Example: `  # Find fields related to email addresses
  oastable search "customer email" --db sqlite://api.db --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := databaseURL(searchDB)
		if err != nil {
			return err
		}
		db, dialect, err := cli.OpenDatabase(cmd.Context(), url)
		if err != nil {
			return cli.DBConnectError("opening database", err)
		}
		defer func() { _ = db.Close() }()

		limit := resolveInt(searchLimit, cfg.Search.Limit)
		idx := vecindex.NewSQLIndex(db, dialect)
		hits, err := idx.Search(cmd.Context(), args[0], limit)
		if err != nil {
			return cli.GeneralError("searching index", err)
		}

		if len(hits) == 0 {
			if !quiet {
				fmt.Println("No results.")
			}
			return nil
		}
		for _, hit := range hits {
			fmt.Printf("%.4f  %s.%s (%s %s)", hit.Score, hit.Record.Table, hit.Record.Column,
				hit.Record.Method, hit.Record.HTTPPath)
			if hit.Record.SkippedCandidate {
				fmt.Printf("  [candidate %d, no column]", hit.Record.Candidate)
			}
			if hit.Record.Description != "" {
				fmt.Printf("  %s", hit.Record.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchDB, "db", "", "database URL (postgres:// or sqlite://)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results")
}
