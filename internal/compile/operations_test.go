package compile_test

import (
	"testing"

	"github.com/oastable/oastable/internal/compile"
)

func TestExtractOperations_DerivedID(t *testing.T) {
	ops, err := compile.ExtractOperations(mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/users/{id}/posts": {"get": {"responses": {}}}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].OperationID != "get__users_id_posts" {
		t.Errorf("derived id = %q, want get__users_id_posts", ops[0].OperationID)
	}
	if ops[0].Explicit {
		t.Error("derived id must not be marked explicit")
	}
}

func TestExtractOperations_PicksLowestJSONResponse(t *testing.T) {
	ops, err := compile.ExtractOperations(mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/a": {"get": {"operationId": "getA", "responses": {
				"default": {"description": "d", "content": {"application/json": {"schema": {"type": "string"}}}},
				"404": {"description": "nf", "content": {"application/json": {"schema": {"type": "string"}}}},
				"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "integer"}}}}
			}}}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if ops[0].ResponseStatus != "200" {
		t.Errorf("picked status %q, want 200", ops[0].ResponseStatus)
	}
}

func TestExtractOperations_SkipsNonJSONContent(t *testing.T) {
	ops, err := compile.ExtractOperations(mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/a": {"get": {"operationId": "getA", "responses": {
				"200": {"description": "ok", "content": {
					"text/csv": {"schema": {"type": "string"}},
					"application/problem+json": {"schema": {"type": "object", "properties": {"detail": {"type": "string"}}}}
				}}
			}}}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if ops[0].Response == nil {
		t.Fatal("expected the +json media type to be selected")
	}
	if ops[0].Response.Value == nil || len(ops[0].Response.Value.Properties) != 1 {
		t.Error("wrong schema selected")
	}
}

func TestExtractOperations_MergesPathItemParameters(t *testing.T) {
	ops, err := compile.ExtractOperations(mustDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/users/{id}": {
				"parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
				"get": {
					"operationId": "getUser",
					"parameters": [{"name": "expand", "in": "query", "schema": {"type": "string"}}],
					"responses": {}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(ops[0].Parameters) != 2 {
		t.Fatalf("expected 2 merged parameters, got %d", len(ops[0].Parameters))
	}
	if ops[0].Parameters[0].Value.Name != "id" {
		t.Error("path-item parameters should come first")
	}
}

func TestExtractOperations_DeterministicOrder(t *testing.T) {
	src := `{
		"openapi": "3.0.0",
		"info": {"title": "t", "version": "1"},
		"paths": {
			"/b": {"get": {"operationId": "getB", "responses": {}}, "post": {"operationId": "postB", "responses": {}}},
			"/a": {"delete": {"operationId": "deleteA", "responses": {}}}
		}
	}`
	ops, err := compile.ExtractOperations(mustDoc(t, src))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"deleteA", "getB", "postB"}
	for i, id := range want {
		if ops[i].OperationID != id {
			t.Errorf("ops[%d] = %q, want %q", i, ops[i].OperationID, id)
		}
	}
}
