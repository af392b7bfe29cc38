package compile

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Warning records a non-fatal irregularity encountered during a compile:
// unsupported constructs, reference cycles that were cut, allOf merge
// collisions and skipped polymorphic branches. Warnings never abort a
// compile; they ride along with the successful result.
type Warning struct {
	OperationID string
	Path        string
	Reason      string
}

// Result is the complete output of one compile pass. Tables are ordered by
// operation (document order), root before children. Fields is the metadata
// stream for the vector-index sink.
type Result struct {
	Tables   []TableDefinition
	Fields   []FieldRecord
	Warnings []Warning
}

// DDL renders the result's tables as CREATE TABLE statements for the given
// dialect. Safe to call repeatedly; output is deterministic.
func (r *Result) DDL(dialect Dialect) []string {
	return EmitDDL(r.Tables, dialect)
}

// Compile derives a relational schema plan and field-metadata stream from a
// parsed OAS document. The transformation is pure and synchronous: it does no
// I/O, uses a fresh NamingRegistry per call, and either returns a complete
// result or an error, never a partial schema.
//
// A document with zero operations compiles to an empty result. Dangling $refs
// and duplicate explicit operationIds are the only fatal conditions.
func Compile(doc *openapi3.T) (*Result, error) {
	ops, err := ExtractOperations(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: []Warning{}}

	// One registry per compile pass; names are claimed in document order so
	// the first operation to hit a name keeps it unsuffixed. Each operation's
	// tables are resolved as a batch because working names are only unique
	// within one operation (derived operation IDs may collide document-wide).
	registry := NewNamingRegistry()
	for _, op := range ops {
		tables, err := compileOperation(doc, op, &result.Warnings)
		if err != nil {
			return nil, err
		}
		registry.ResolveNames(tables)
		result.Tables = append(result.Tables, tables...)
	}

	result.Fields = EmitFieldRecords(result.Tables)

	return result, nil
}

// compileOperation resolves and flattens one operation's parameters, request
// body and response body, then plans its tables.
func compileOperation(doc *openapi3.T, op OperationDescriptor, warnings *[]Warning) ([]TableDefinition, error) {
	r := newResolver(doc, op.OperationID, warnings)

	var req, resp flatView

	for _, pref := range op.Parameters {
		if pref == nil || pref.Value == nil {
			continue
		}
		param := pref.Value
		node, err := r.Resolve(param.Schema, "param."+param.In+"."+param.Name)
		if err != nil {
			return nil, err
		}
		if node.Description == "" {
			node = withDescription(node, param.Description)
		}
		flatten(node, "param."+param.In+"."+param.Name, param.Name, !param.Required, &req)
	}

	if op.Request != nil {
		node, err := r.Resolve(op.Request, "request")
		if err != nil {
			return nil, err
		}
		flatten(node, "request", "", false, &req)
	}

	if op.Response != nil {
		node, err := r.Resolve(op.Response, "response")
		if err != nil {
			return nil, err
		}
		flatten(node, "response", "", false, &resp)
	}

	req.normalizeNames("body")
	resp.normalizeNames("body")

	p := &planner{op: op}
	return p.plan(req, resp), nil
}

// normalizeNames fills the working names of top-level scalar bodies and
// top-level array children, which flatten leaves empty.
func (v *flatView) normalizeNames(fallback string) {
	for i := range v.Columns {
		v.Columns[i].Name = nonEmptyName(v.Columns[i].Name, fallback)
	}
	for i := range v.Children {
		v.Children[i].Name = nonEmptyName(v.Children[i].Name, "items")
	}
}

// withDescription returns a shallow copy of node carrying the parameter's
// description, so parameter docs reach the metadata stream.
func withDescription(node *SchemaNode, desc string) *SchemaNode {
	if desc == "" {
		return node
	}
	clone := *node
	clone.Description = desc
	return &clone
}
