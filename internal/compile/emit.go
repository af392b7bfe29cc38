package compile

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor for emitted CREATE TABLE statements. The
// compiler needs nothing dialect-specific beyond typed columns, an identity
// primary key and foreign keys.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// FieldRecord is one field-metadata record for the vector-index sink: one per
// emitted column plus one per leaf of every skipped polymorphic candidate.
// ID is stable across compiles of an unchanged document (table + source path).
type FieldRecord struct {
	ID          string
	Table       string
	Column      string // empty for skipped-candidate fields
	Path        string
	Type        ScalarType
	Description string

	OperationID string
	Method      string
	HTTPPath    string

	// SkippedCandidate marks fields from non-authoritative polymorphic
	// branches; they exist in no table but stay searchable.
	SkippedCandidate bool
	Candidate        int
}

// EmitDDL renders finalized table definitions into CREATE TABLE statements,
// in planning order (parents before children, so foreign keys always resolve).
// It only produces statements; execution belongs to the caller's sink.
func EmitDDL(tables []TableDefinition, dialect Dialect) []string {
	stmts := make([]string, 0, len(tables))
	for i := range tables {
		stmts = append(stmts, createTable(&tables[i], dialect))
	}
	return stmts
}

func createTable(t *TableDefinition, dialect Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %q (\n", t.Name)
	for i := range t.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("    ")
		b.WriteString(columnDef(&t.Columns[i], dialect))
	}
	b.WriteString("\n)")
	return b.String()
}

func columnDef(col *ColumnDescriptor, dialect Dialect) string {
	switch {
	case col.PrimaryKey:
		if dialect == DialectPostgres {
			return fmt.Sprintf("%q BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY", col.Name)
		}
		return fmt.Sprintf("%q INTEGER PRIMARY KEY AUTOINCREMENT", col.Name)
	case col.ForeignKey:
		return fmt.Sprintf("%q %s NOT NULL REFERENCES %q(%q)",
			col.Name, sqlType(TypeInteger, dialect), col.RefTable, pkColumnName)
	}

	def := fmt.Sprintf("%q %s", col.Name, sqlType(col.Type, dialect))
	if !col.Nullable {
		def += " NOT NULL"
	}
	return def
}

func sqlType(t ScalarType, dialect Dialect) string {
	switch t {
	case TypeInteger:
		if dialect == DialectPostgres {
			return "BIGINT"
		}
		return "INTEGER"
	case TypeNumber:
		if dialect == DialectPostgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		// string and unstructured land in text columns.
		return "TEXT"
	}
}

// EmitFieldRecords produces the metadata stream for finalized tables. Every
// reachable leaf of the original schema appears exactly once: data columns
// from the tables, plus shadow fields from skipped polymorphic candidates.
// Synthetic PK/FK columns describe no schema field and are excluded.
func EmitFieldRecords(tables []TableDefinition) []FieldRecord {
	var records []FieldRecord
	for i := range tables {
		t := &tables[i]
		for j := range t.Columns {
			col := &t.Columns[j]
			if col.PrimaryKey || col.ForeignKey {
				continue
			}
			records = append(records, FieldRecord{
				ID:          t.Name + "." + col.Path,
				Table:       t.Name,
				Column:      col.Name,
				Path:        col.Path,
				Type:        col.Type,
				Description: col.Description,
				OperationID: t.OperationID,
				Method:      t.Method,
				HTTPPath:    t.HTTPPath,
			})
		}
		for _, sh := range t.Shadow {
			records = append(records, FieldRecord{
				ID:               t.Name + "." + sh.Path + "#" + strconv.Itoa(sh.Candidate),
				Table:            t.Name,
				Path:             sh.Path,
				Type:             sh.Type,
				Description:      sh.Description,
				OperationID:      t.OperationID,
				Method:           t.Method,
				HTTPPath:         t.HTTPPath,
				SkippedCandidate: true,
				Candidate:        sh.Candidate,
			})
		}
	}
	return records
}
