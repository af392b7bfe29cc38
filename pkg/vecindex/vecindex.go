// Package vecindex maintains a vector-searchable index of compiled field
// metadata. The index backend is an interface so deployments can swap in a
// dedicated vector database; the default SQLIndex persists vectors through
// the same SQL handle the relational sink uses and ranks by cosine
// similarity in-process.
package vecindex

import (
	"context"
	"fmt"

	"github.com/oastable/oastable"
)

// Record is one indexable field-metadata entry. ID is stable across
// recompilations of the same document so upserts replace rather than
// duplicate.
type Record struct {
	ID          string `json:"id"`
	Table       string `json:"table"`
	Column      string `json:"field"`
	FieldPath   string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description"`
	OperationID string `json:"operation_id"`
	Method      string `json:"method"`
	HTTPPath    string `json:"http_path"`

	// SkippedCandidate marks metadata for a non-authoritative polymorphic
	// branch that has no backing column.
	SkippedCandidate bool `json:"skipped_candidate,omitempty"`
	Candidate        int  `json:"candidate,omitempty"`
}

// Text returns the string that is embedded for this record.
func (r Record) Text() string {
	return fmt.Sprintf("%s %s %s", r.OperationID, r.Column, r.Description)
}

// Hit is a single search result.
type Hit struct {
	Score  float64
	Record Record
}

// Index is the vector-index sink contract.
type Index interface {
	// Upsert embeds and stores the given records, replacing entries that
	// share an ID.
	Upsert(ctx context.Context, records []Record) error

	// Search embeds the query and returns the limit closest records by
	// cosine similarity, best first.
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

// RecordsFromFields converts compiled field metadata into index records.
func RecordsFromFields(fields []oastable.FieldRecord) []Record {
	records := make([]Record, 0, len(fields))
	for _, f := range fields {
		records = append(records, Record{
			ID:               f.ID,
			Table:            f.Table,
			Column:           f.Column,
			FieldPath:        f.Path,
			Type:             string(f.Type),
			Description:      f.Description,
			OperationID:      f.OperationID,
			Method:           f.Method,
			HTTPPath:         f.HTTPPath,
			SkippedCandidate: f.SkippedCandidate,
			Candidate:        f.Candidate,
		})
	}
	return records
}
