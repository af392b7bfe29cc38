// Package main provides a CLI for compiling OpenAPI documents into
// relational schemas with vector-searchable field metadata.
//
// The CLI supports:
//   - validate: Check an OpenAPI document parses and compiles cleanly
//   - compile: Emit CREATE TABLE statements for every operation
//   - migrate: Apply the compiled schema to a database
//   - samples: Generate example request/response payloads
//   - index: Embed field metadata into the vector index
//   - search: Query the vector index by natural-language text
//
// Commands that require database access (migrate, index, search) need
// --db or OASTABLE_DATABASE_URL. Document-only commands do not.
package main

func main() {
	Execute()
}
