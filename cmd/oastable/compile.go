package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable"
	"github.com/oastable/oastable/internal/cli"
)

var (
	compileSpec    string
	compileDialect string
	compileOutput  string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a document into CREATE TABLE statements",
	Long: `Compile an OpenAPI document into one CREATE TABLE statement per
operation (plus child tables for nested arrays), written to stdout or a file.`,
	Example: `  # Print SQLite DDL to stdout
  oastable compile --spec api/openapi.yaml

  # Write PostgreSQL DDL to a file
  oastable compile --spec api/openapi.yaml --dialect postgres --output schema.sql`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := compileDocument(compileSpec)
		if err != nil {
			return err
		}
		printWarnings(result.Warnings)

		dialect, err := resolveDialect(resolveString(compileDialect, cfg.Compile.Dialect))
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}

		ddl := strings.Join(result.DDL(dialect), ";\n\n") + ";\n"

		output := resolveString(compileOutput, cfg.Compile.Output)
		if output == "" {
			fmt.Print(ddl)
			return nil
		}
		if err := os.WriteFile(output, []byte(ddl), 0o644); err != nil {
			return cli.GeneralError("writing output", err)
		}
		if !quiet {
			fmt.Printf("Wrote %d tables to %s\n", len(result.Tables), output)
		}
		return nil
	},
}

// resolveDialect maps the flag or config value to a dialect, falling back
// to the database URL scheme and finally to sqlite.
func resolveDialect(name string) (oastable.Dialect, error) {
	switch name {
	case "sqlite":
		return oastable.DialectSQLite, nil
	case "postgres", "postgresql":
		return oastable.DialectPostgres, nil
	case "":
		if url, err := cfg.DSN(); err == nil && url != "" {
			dialect, _, _, err := cli.ParseDatabaseURL(url)
			if err == nil {
				return dialect, nil
			}
		}
		return oastable.DialectSQLite, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (must be sqlite or postgres)", name)
	}
}

func init() {
	compileCmd.Flags().StringVar(&compileSpec, "spec", "", "path to OpenAPI document")
	compileCmd.Flags().StringVar(&compileDialect, "dialect", "", "SQL dialect: sqlite or postgres")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
}
