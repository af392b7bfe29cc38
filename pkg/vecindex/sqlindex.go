package vecindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/oastable/oastable"
	"github.com/oastable/oastable/pkg/store"
)

// DefaultIndexTable is the table SQLIndex stores records in.
const DefaultIndexTable = "oastable_fields"

// SQLIndex persists embedded records in a plain SQL table and ranks search
// results in-process. It works on the same connection as the relational
// sink, which keeps single-binary deployments to one database.
type SQLIndex struct {
	db       store.Execer
	dialect  oastable.Dialect
	embedder Embedder
	table    string
}

var _ Index = (*SQLIndex)(nil)

// NewSQLIndex creates an index over an existing database handle, embedding
// with HashEmbedder unless WithEmbedder overrides it.
func NewSQLIndex(db store.Execer, dialect oastable.Dialect) *SQLIndex {
	return &SQLIndex{
		db:       db,
		dialect:  dialect,
		embedder: HashEmbedder{},
		table:    DefaultIndexTable,
	}
}

// WithEmbedder replaces the embedder and returns the index.
func (x *SQLIndex) WithEmbedder(e Embedder) *SQLIndex {
	x.embedder = e
	return x
}

// Init creates the backing table if it does not exist.
func (x *SQLIndex) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %q (%q TEXT PRIMARY KEY, %q TEXT NOT NULL, %q TEXT NOT NULL)",
		x.table, "id", "vector", "payload")
	if _, err := x.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating index table: %w", err)
	}
	return nil
}

// Upsert embeds and stores records, replacing entries that share an ID.
func (x *SQLIndex) Upsert(ctx context.Context, records []Record) error {
	if err := x.Init(ctx); err != nil {
		return err
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %q (%q, %q, %q) VALUES (%s, %s, %s)"+
			" ON CONFLICT (%q) DO UPDATE SET %q = excluded.%q, %q = excluded.%q",
		x.table, "id", "vector", "payload",
		x.placeholder(1), x.placeholder(2), x.placeholder(3),
		"id", "vector", "vector", "payload", "payload")
	for _, r := range records {
		vector, err := json.Marshal(x.embedder.Embed(r.Text()))
		if err != nil {
			return fmt.Errorf("encoding vector for %s: %w", r.ID, err)
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding payload for %s: %w", r.ID, err)
		}
		if _, err := x.db.ExecContext(ctx, stmt, r.ID, string(vector), string(payload)); err != nil {
			return fmt.Errorf("upserting %s: %w", r.ID, err)
		}
	}
	return nil
}

// Search embeds the query, scores every stored record by cosine similarity
// and returns the limit best hits. Ties break on record ID so results are
// stable.
func (x *SQLIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	queryVec := x.embedder.Embed(query)

	rows, err := x.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %q, %q FROM %q", "vector", "payload", x.table))
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var vectorJSON, payloadJSON string
		if err := rows.Scan(&vectorJSON, &payloadJSON); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}
		var vector []float64
		if err := json.Unmarshal([]byte(vectorJSON), &vector); err != nil {
			return nil, fmt.Errorf("decoding stored vector: %w", err)
		}
		var record Record
		if err := json.Unmarshal([]byte(payloadJSON), &record); err != nil {
			return nil, fmt.Errorf("decoding stored payload: %w", err)
		}
		hits = append(hits, Hit{Score: Cosine(queryVec, vector), Record: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Record.ID < hits[j].Record.ID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (x *SQLIndex) placeholder(n int) string {
	if x.dialect == oastable.DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
