package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oastable/oastable/internal/cli"
	"github.com/oastable/oastable/internal/samplegen"
)

var (
	samplesSpec string
	samplesDir  string
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Generate example request/response payloads",
	Long: `Generate one JSON example per request and response schema, mirroring
the document structure with fixed placeholder values.`,
	Example: `  # Write samples to the default directory
  oastable samples --spec api/openapi.yaml

  # Write samples to a specific directory
  oastable samples --spec api/openapi.yaml --dir out/samples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument(samplesSpec)
		if err != nil {
			return err
		}

		dir := resolveString(samplesDir, cfg.Samples.Dir)
		written, err := samplegen.Generate(doc, dir)
		if err != nil {
			return cli.GeneralError("generating samples", err)
		}

		if !quiet {
			for _, path := range written {
				fmt.Println(path)
			}
			fmt.Printf("Generated %d sample files in %s\n", len(written), dir)
		}
		return nil
	},
}

func init() {
	samplesCmd.Flags().StringVar(&samplesSpec, "spec", "", "path to OpenAPI document")
	samplesCmd.Flags().StringVar(&samplesDir, "dir", "", "output directory for sample files")
}
