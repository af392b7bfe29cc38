// Package samplegen produces example payloads for compiled operations: JSON
// documents mirroring each request and response schema, and typed sample
// rows for the relational sink. Values are fixed placeholders (1, 1.0,
// true, "sample") so output is deterministic.
package samplegen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oastable/oastable/internal/compile"
)

const componentPrefix = "#/components/schemas/"

// Generate writes one <operationId>_request.json and <operationId>_response.json
// per operation that has the corresponding schema, and returns the paths
// written.
func Generate(doc *openapi3.T, outDir string) ([]string, error) {
	ops, err := compile.ExtractOperations(doc)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sample directory: %w", err)
	}

	var written []string
	for _, op := range ops {
		for _, side := range []struct {
			tag    string
			schema *openapi3.SchemaRef
		}{
			{"request", op.Request},
			{"response", op.Response},
		} {
			if side.schema == nil {
				continue
			}
			sample := fromSchema(doc, side.schema, map[string]bool{})
			data, err := json.MarshalIndent(sample, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("encoding sample for %s: %w", op.OperationID, err)
			}
			path := filepath.Join(outDir, fmt.Sprintf("%s_%s.json", op.OperationID, side.tag))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return nil, fmt.Errorf("writing sample for %s: %w", op.OperationID, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// fromSchema builds a sample value for the given schema, following local
// component references. Cycles and unresolvable references fall back to the
// default scalar sample.
func fromSchema(doc *openapi3.T, ref *openapi3.SchemaRef, seen map[string]bool) any {
	if ref == nil {
		return "sample"
	}
	if ref.Ref != "" && strings.HasPrefix(ref.Ref, componentPrefix) {
		name := strings.TrimPrefix(ref.Ref, componentPrefix)
		if seen[name] {
			return "sample"
		}
		target := componentSchema(doc, name)
		if target == nil {
			return "sample"
		}
		seen[name] = true
		defer delete(seen, name)
		return fromSchema(doc, target, seen)
	}
	schema := ref.Value
	if schema == nil {
		return "sample"
	}

	switch {
	case schema.Type.Is(openapi3.TypeObject) || len(schema.Properties) > 0:
		data := map[string]any{}
		for name, prop := range schema.Properties {
			data[name] = fromSchema(doc, prop, seen)
		}
		return data
	case schema.Type.Is(openapi3.TypeArray):
		return []any{fromSchema(doc, schema.Items, seen)}
	case len(schema.AllOf) > 0:
		data := map[string]any{}
		for _, member := range schema.AllOf {
			if sub, ok := fromSchema(doc, member, seen).(map[string]any); ok {
				for name, v := range sub {
					if _, exists := data[name]; !exists {
						data[name] = v
					}
				}
			}
		}
		return data
	case len(schema.OneOf) > 0:
		return fromSchema(doc, schema.OneOf[0], seen)
	case len(schema.AnyOf) > 0:
		return fromSchema(doc, schema.AnyOf[0], seen)
	case schema.Type.Is(openapi3.TypeInteger):
		return 1
	case schema.Type.Is(openapi3.TypeNumber):
		return 1.0
	case schema.Type.Is(openapi3.TypeBoolean):
		return true
	default:
		return "sample"
	}
}

func componentSchema(doc *openapi3.T, name string) *openapi3.SchemaRef {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return doc.Components.Schemas[name]
}
