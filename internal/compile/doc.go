// Package compile turns an OpenAPI document into a relational schema plan.
//
// The pipeline runs in five stages, each a pure in-memory transformation:
//
//  1. Operation extraction: every path/method pair becomes an
//     OperationDescriptor with a stable operation ID.
//  2. Schema resolution: request/response schema fragments are resolved into
//     finite SchemaNode trees. $ref chains are followed against the document's
//     component table with a per-path cycle guard, and the allOf/oneOf/anyOf
//     combinators are collapsed into mergeable or polymorphic nodes.
//  3. Flattening: each tree becomes an ordered list of column descriptors.
//     Arrays of objects (and repeated scalars) are split off as child tables.
//  4. Naming: table and column names are sanitized and made unique across the
//     whole document, in document order, so repeated compiles of the same
//     document produce byte-identical output.
//  5. Emission: finalized tables are rendered to CREATE TABLE statements and
//     to field-metadata records for the vector index sink.
//
// The package performs no I/O. Executing DDL and upserting metadata records
// belong to pkg/store and pkg/vecindex.
package compile
