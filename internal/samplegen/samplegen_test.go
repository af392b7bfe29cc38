package samplegen_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oastable/oastable/internal/compile"
	"github.com/oastable/oastable/internal/samplegen"
	"github.com/oastable/oastable/pkg/store"
)

func mustDoc(t *testing.T, src string) *openapi3.T {
	t.Helper()
	var doc openapi3.T
	if err := doc.UnmarshalJSON([]byte(src)); err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return &doc
}

func TestGenerate_WritesTypedPlaceholders(t *testing.T) {
	doc := mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/users": {"post": {
				"operationId": "createUser",
				"requestBody": {"content": {"application/json": {"schema": {
					"type": "object",
					"properties": {
						"name": {"type": "string"},
						"age": {"type": "integer"},
						"score": {"type": "number"},
						"active": {"type": "boolean"},
						"tags": {"type": "array", "items": {"type": "string"}}
					}
				}}}},
				"responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {
					"type": "object", "properties": {"id": {"type": "integer"}}
				}}}}}
			}}
		}
	}`)

	dir := t.TempDir()
	written, err := samplegen.Generate(doc, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("expected request and response samples, got %v", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "createUser_request.json"))
	if err != nil {
		t.Fatal(err)
	}
	var sample map[string]any
	if err := json.Unmarshal(data, &sample); err != nil {
		t.Fatal(err)
	}

	if sample["name"] != "sample" {
		t.Errorf("name = %v, want sample", sample["name"])
	}
	if sample["age"] != float64(1) {
		t.Errorf("age = %v, want 1", sample["age"])
	}
	if sample["active"] != true {
		t.Errorf("active = %v, want true", sample["active"])
	}
	tags, ok := sample["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "sample" {
		t.Errorf("tags = %v, want one-element sample array", sample["tags"])
	}
}

func TestGenerate_FollowsComponentRefs(t *testing.T) {
	doc := mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/self": {"get": {"operationId": "getSelf", "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {
				"$ref": "#/components/schemas/Self"
			}}}}}}}
		},
		"components": {"schemas": {
			"Self": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"next": {"$ref": "#/components/schemas/Self"}
				}
			}
		}}
	}`)

	dir := t.TempDir()
	if _, err := samplegen.Generate(doc, dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "getSelf_response.json"))
	if err != nil {
		t.Fatal(err)
	}
	var sample map[string]any
	if err := json.Unmarshal(data, &sample); err != nil {
		t.Fatal(err)
	}
	if sample["name"] != "sample" {
		t.Errorf("name = %v", sample["name"])
	}
	// The self-reference terminates as a plain scalar.
	if sample["next"] != "sample" {
		t.Errorf("cyclic reference should degrade to a scalar, got %v", sample["next"])
	}
}

func TestGenerate_SkipsOperationsWithoutSchemas(t *testing.T) {
	doc := mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {"/ping": {"get": {"operationId": "ping", "responses": {"204": {"description": "no content"}}}}}
	}`)

	written, err := samplegen.Generate(doc, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 0 {
		t.Errorf("expected no files, got %v", written)
	}
}

func TestRows_OneRowPerTable(t *testing.T) {
	tables := []compile.TableDefinition{
		{
			Name: "listorders",
			Columns: []compile.ColumnDescriptor{
				{Name: "_row_id", Type: compile.TypeInteger, PrimaryKey: true},
				{Name: "total", Type: compile.TypeNumber},
				{Name: "paid", Type: compile.TypeBoolean},
			},
		},
		{
			Name:   "listorders_items",
			Parent: "listorders",
			Columns: []compile.ColumnDescriptor{
				{Name: "_row_id", Type: compile.TypeInteger, PrimaryKey: true},
				{Name: "_parent_row_id", Type: compile.TypeInteger, ForeignKey: true, RefTable: "listorders"},
				{Name: "sku", Type: compile.TypeString},
			},
		},
	}

	rows := samplegen.Rows(tables)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	var _ store.Row = rows[0]
	if rows[0].Values[0] != int64(1) {
		t.Errorf("primary key sample = %v, want 1", rows[0].Values[0])
	}
	if rows[0].Values[1] != 1.0 {
		t.Errorf("number sample = %v, want 1.0", rows[0].Values[1])
	}
	if rows[0].Values[2] != true {
		t.Errorf("boolean sample = %v, want true", rows[0].Values[2])
	}
	if rows[1].Values[1] != int64(1) {
		t.Errorf("foreign key sample = %v, want parent row 1", rows[1].Values[1])
	}
	if rows[1].Values[2] != "sample" {
		t.Errorf("string sample = %v, want sample", rows[1].Values[2])
	}
}
