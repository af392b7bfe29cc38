// Package loader deserializes OpenAPI documents for the compiler.
//
// This package is the only one that touches raw document bytes. It accepts
// JSON or YAML and returns the kin-openapi object graph without resolving
// any $ref pointers: reference resolution (including cycle handling and
// dangling-reference errors) is owned by the compiler, so the loader must
// not pre-resolve or validate references behind its back.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"sigs.k8s.io/yaml"
)

// Load reads an OAS document from a file. The format is detected from the
// content, not the extension: JSON is tried first, anything else goes
// through the YAML converter.
func Load(path string) (*openapi3.T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses an OAS document from raw JSON or YAML bytes.
func LoadBytes(data []byte) (*openapi3.T, error) {
	if !json.Valid(data) {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting YAML document: %w", err)
		}
		data = converted
	}

	var doc openapi3.T
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}
	return &doc, nil
}
