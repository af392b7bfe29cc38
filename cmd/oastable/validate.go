package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable"
	"github.com/oastable/oastable/internal/cli"
)

var validateSpec string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an OpenAPI document",
	Long:  `Validate that an OpenAPI document parses and compiles cleanly.`,
	Example: `  # Validate a specific document
  oastable validate --spec api/openapi.yaml

  # Validate using config file settings
  oastable validate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, path, err := loadDocument(validateSpec)
		if err != nil {
			return err
		}
		result, err := oastable.Compile(doc)
		if err != nil {
			return cli.CompileError("compiling document", err)
		}
		ops, err := oastable.ExtractOperations(doc)
		if err != nil {
			return cli.CompileError("compiling document", err)
		}

		printWarnings(result.Warnings)
		if !quiet {
			derived := 0
			for _, op := range ops {
				if !op.Explicit {
					derived++
				}
			}
			fmt.Printf("%s is valid: %d operations, %d tables, %d indexed fields",
				path, len(ops), len(result.Tables), len(result.Fields))
			if derived > 0 {
				fmt.Printf(", %d without operationId", derived)
			}
			if len(result.Warnings) > 0 {
				fmt.Printf(", %d warnings", len(result.Warnings))
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSpec, "spec", "", "path to OpenAPI document")
}
