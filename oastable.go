// Package oastable compiles OpenAPI documents into relational schemas and a
// vector-searchable field index for AI agent consumption.
//
// Each API operation becomes one table (child tables are split off for array
// fields), and every schema field becomes a field-metadata record an agent
// can search by description. Compilation is deterministic: the same document
// always yields byte-identical DDL and identical column order.
//
// # Quick Start
//
// Load a document and compile it:
//
//	doc, err := loader.Load("petstore.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := oastable.Compile(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, stmt := range result.DDL(oastable.DialectSQLite) {
//	    fmt.Println(stmt)
//	}
//
// Apply the schema and index the fields with the sink packages:
//
//	st := store.New(db, oastable.DialectSQLite)
//	err = st.Apply(ctx, result.DDL(oastable.DialectSQLite))
//
//	idx := vecindex.NewSQLIndex(db, oastable.DialectSQLite)
//	err = idx.Upsert(ctx, vecindex.RecordsFromFields(result.Fields))
//
// # Dependency Isolation
//
// This package and internal/compile perform no I/O. Document deserialization
// lives in pkg/loader, DDL execution in pkg/store, and metadata indexing in
// pkg/vecindex, so consumers embed only what they use.
package oastable

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oastable/oastable/internal/compile"
)

// Result contains all tables, field-metadata records and warnings produced
// from one document.
type Result = compile.Result

// TableDefinition is one planned table with finalized names.
type TableDefinition = compile.TableDefinition

// ColumnDescriptor is one flattened schema field.
type ColumnDescriptor = compile.ColumnDescriptor

// FieldRecord is one field-metadata record for the vector-index sink.
type FieldRecord = compile.FieldRecord

// Warning is a non-fatal irregularity collected during a compile.
type Warning = compile.Warning

// OperationDescriptor describes one extracted API operation.
type OperationDescriptor = compile.OperationDescriptor

// Dialect selects the SQL flavor of emitted DDL.
type Dialect = compile.Dialect

// ScalarType is the column-level type of a flattened field.
type ScalarType = compile.ScalarType

// Supported DDL dialects.
const (
	DialectSQLite   = compile.DialectSQLite
	DialectPostgres = compile.DialectPostgres
)

// Compile derives a relational schema plan and field-metadata stream from a
// parsed OAS document. See internal/compile for pipeline details.
func Compile(doc *openapi3.T) (*Result, error) {
	return compile.Compile(doc)
}

// ExtractOperations lists the document's operations in compile order without
// running the full pipeline. Useful for validation and inspection commands.
var ExtractOperations = compile.ExtractOperations
