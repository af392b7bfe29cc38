package main

import (
	"github.com/spf13/cobra"

	"github.com/oastable/oastable/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "oastable",
	Short: "OpenAPI to relational schema compiler",
	Long: `oastable - OpenAPI to relational schema compiler

Oastable compiles an OpenAPI document into one relational table per
operation, flattening nested request and response structures into typed
columns, and indexes per-field metadata for vector search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupDocument = "document"
	groupDatabase = "database"
	groupUtility  = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover oastable.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Define command groups
	rootCmd.AddGroup(
		&cobra.Group{ID: groupDocument, Title: "Document:"},
		&cobra.Group{ID: groupDatabase, Title: "Database:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	// Document commands
	validateCmd.GroupID = groupDocument
	compileCmd.GroupID = groupDocument
	samplesCmd.GroupID = groupDocument
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(samplesCmd)

	// Database commands
	migrateCmd.GroupID = groupDatabase
	indexCmd.GroupID = groupDatabase
	searchCmd.GroupID = groupDatabase
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)

	// Utility commands
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveInt returns the first non-zero int from the provided values.
func resolveInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
