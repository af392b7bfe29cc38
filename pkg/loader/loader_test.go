package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oastable/oastable/pkg/loader"
)

const jsonDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "t", "version": "1"},
	"paths": {
		"/users": {"get": {"operationId": "listUsers", "responses": {}}}
	}
}`

const yamlDoc = `openapi: 3.0.0
info:
  title: t
  version: "1"
paths:
  /users:
    get:
      operationId: listUsers
      responses: {}
`

func TestLoadBytes_JSON(t *testing.T) {
	doc, err := loader.LoadBytes([]byte(jsonDoc))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Paths == nil || doc.Paths.Find("/users") == nil {
		t.Error("expected /users path")
	}
}

func TestLoadBytes_YAML(t *testing.T) {
	doc, err := loader.LoadBytes([]byte(yamlDoc))
	if err != nil {
		t.Fatal(err)
	}
	item := doc.Paths.Find("/users")
	if item == nil || item.Get == nil || item.Get.OperationID != "listUsers" {
		t.Error("YAML document did not round-trip through conversion")
	}
}

func TestLoadBytes_KeepsRefsUnresolved(t *testing.T) {
	doc, err := loader.LoadBytes([]byte(`{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {},
		"components": {"schemas": {
			"A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}}},
			"B": {"type": "string"}
		}}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	ref := doc.Components.Schemas["A"].Value.Properties["b"]
	if ref.Ref != "#/components/schemas/B" {
		t.Errorf("reference was resolved or lost: %q", ref.Ref)
	}
}

func TestLoadBytes_Garbage(t *testing.T) {
	if _, err := loader.LoadBytes([]byte(": not : valid : anything [")); err == nil {
		t.Error("expected an error for unparseable input")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := loader.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Paths.Find("/users") == nil {
		t.Error("expected /users path")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
