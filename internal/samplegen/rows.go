package samplegen

import (
	"github.com/oastable/oastable/internal/compile"
	"github.com/oastable/oastable/pkg/store"
)

// Rows builds one sample row per compiled table. Tables arrive in planning
// order (parents first), so every row can reference parent row 1 and the
// batch inserts cleanly in order.
func Rows(tables []compile.TableDefinition) []store.Row {
	rows := make([]store.Row, 0, len(tables))
	for i := range tables {
		t := &tables[i]
		row := store.Row{Table: t.Name}
		for j := range t.Columns {
			col := &t.Columns[j]
			row.Columns = append(row.Columns, col.Name)
			row.Values = append(row.Values, columnSample(col))
		}
		rows = append(rows, row)
	}
	return rows
}

func columnSample(col *compile.ColumnDescriptor) any {
	if col.PrimaryKey || col.ForeignKey {
		return int64(1)
	}
	switch col.Type {
	case compile.TypeInteger:
		return int64(1)
	case compile.TypeNumber:
		return 1.0
	case compile.TypeBoolean:
		return true
	default:
		return "sample"
	}
}
