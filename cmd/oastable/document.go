package main

import (
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oastable/oastable"
	"github.com/oastable/oastable/internal/cli"
	"github.com/oastable/oastable/pkg/loader"
)

// loadDocument reads and parses the OpenAPI document at path, resolving the
// path through config when the flag is empty.
func loadDocument(flagPath string) (*openapi3.T, string, error) {
	path := cfg.ResolvedSpec(flagPath)
	if _, err := os.Stat(path); err != nil {
		return nil, path, cli.CompileError(fmt.Sprintf("document not found: %s", path), nil)
	}
	doc, err := loader.Load(path)
	if err != nil {
		return nil, path, cli.CompileError("parsing document", err)
	}
	return doc, path, nil
}

// compileDocument loads and compiles in one step.
func compileDocument(flagPath string) (*oastable.Result, string, error) {
	doc, path, err := loadDocument(flagPath)
	if err != nil {
		return nil, path, err
	}
	result, err := oastable.Compile(doc)
	if err != nil {
		return nil, path, cli.CompileError("compiling document", err)
	}
	return result, path, nil
}

// printWarnings writes compile warnings to stderr unless quiet is set.
func printWarnings(warnings []oastable.Warning) {
	if quiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s: %s\n", w.OperationID, w.Path, w.Reason)
	}
}
