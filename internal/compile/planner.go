package compile

import "strconv"

// Synthetic column names. Every table gets an auto-increment identity column
// because OAS schemas carry no natural keys; the names are chosen so schema
// fields called "id" keep their own name.
const (
	pkColumnName = "_row_id"
	fkColumnName = "_parent_row_id"
)

// TableDefinition is one planned table: the root table of an operation, or a
// child table split off for an array field. Name stays empty until the naming
// pass runs; WorkingName and column working names identify tables before that.
type TableDefinition struct {
	WorkingName string
	Name        string // final sanitized name, set by ResolveNames

	OperationID string
	Method      string
	HTTPPath    string

	Columns []ColumnDescriptor

	// Parent holds the parent table's working name for child tables.
	Parent string

	// Shadow carries the operation's metadata-only fields (root table only).
	Shadow []ShadowField
}

// planner assembles table definitions for one operation from its flattened
// request and response views. Working names are claimed as tables are planned
// so they stay unique within the operation; parent and FK references resolve
// through them.
type planner struct {
	op     OperationDescriptor
	tables []TableDefinition
	names  map[string]bool
}

// claimWorking registers a working name, appending a numeric suffix when a
// sibling field and a nested path flatten to the same name. Distinct working
// names keep child tables attached to the right parent.
func (p *planner) claimWorking(base string) string {
	if p.names == nil {
		p.names = make(map[string]bool)
	}
	if !p.names[base] {
		p.names[base] = true
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "_" + strconv.Itoa(n)
		if !p.names[candidate] {
			p.names[candidate] = true
			return candidate
		}
	}
}

// plan merges the request and response views into one root table plus child
// tables for every array field, recursively. When both sides contribute
// fields, request and response names get req_/resp_ discriminator prefixes so
// a shared field name cannot silently collapse.
func (p *planner) plan(req, resp flatView) []TableDefinition {
	both := !req.empty() && !resp.empty()
	if both {
		req.prefixNames("req_")
		resp.prefixNames("resp_")
	}

	root := TableDefinition{
		WorkingName: p.claimWorking(p.op.OperationID),
		OperationID: p.op.OperationID,
		Method:      p.op.Method,
		HTTPPath:    p.op.Path,
		Columns:     []ColumnDescriptor{p.pkColumn()},
	}
	root.Shadow = append(root.Shadow, req.Shadow...)
	root.Shadow = append(root.Shadow, resp.Shadow...)

	rootIdx := len(p.tables)
	p.tables = append(p.tables, root)

	p.placeColumns(rootIdx, req.Columns)
	p.placeColumns(rootIdx, resp.Columns)
	for _, child := range append(req.Children, resp.Children...) {
		p.planChild(p.tables[rootIdx].WorkingName, child)
	}

	return p.tables
}

// placeColumns appends scalar columns to a table, diverting repeated scalars
// into single-value child tables.
func (p *planner) placeColumns(tableIdx int, cols []ColumnDescriptor) {
	for _, col := range cols {
		if col.Repeated {
			p.planValueTable(p.tables[tableIdx].WorkingName, col)
			continue
		}
		p.tables[tableIdx].Columns = append(p.tables[tableIdx].Columns, col)
	}
}

// planChild builds a child table for an array-of-object field and recurses
// into its own nested arrays.
func (p *planner) planChild(parent string, sig childSignal) {
	table := TableDefinition{
		WorkingName: p.claimWorking(parent + "_" + nonEmptyName(sig.Name, "items")),
		OperationID: p.op.OperationID,
		Method:      p.op.Method,
		HTTPPath:    p.op.Path,
		Parent:      parent,
		Columns:     []ColumnDescriptor{p.pkColumn(), p.fkColumn(parent)},
	}

	var view flatView
	flatten(sig.Node, sig.Path+"[]", "", false, &view)

	idx := len(p.tables)
	p.tables = append(p.tables, table)
	p.placeColumns(idx, view.Columns)
	p.tables[0].Shadow = append(p.tables[0].Shadow, view.Shadow...)

	for _, nested := range view.Children {
		p.planChild(p.tables[idx].WorkingName, nested)
	}
}

// planValueTable materializes a repeated scalar as a child table holding one
// value per row.
func (p *planner) planValueTable(parent string, col ColumnDescriptor) {
	p.tables = append(p.tables, TableDefinition{
		WorkingName: p.claimWorking(parent + "_" + nonEmptyName(col.Name, "values")),
		OperationID: p.op.OperationID,
		Method:      p.op.Method,
		HTTPPath:    p.op.Path,
		Parent:      parent,
		Columns: []ColumnDescriptor{
			p.pkColumn(),
			p.fkColumn(parent),
			{
				Path:        col.Path + "[]",
				Name:        "value",
				Type:        col.Type,
				Nullable:    col.Nullable,
				Description: col.Description,
			},
		},
	})
}

func (p *planner) pkColumn() ColumnDescriptor {
	return ColumnDescriptor{Name: pkColumnName, Type: TypeInteger, PrimaryKey: true}
}

func (p *planner) fkColumn(parent string) ColumnDescriptor {
	return ColumnDescriptor{Name: fkColumnName, Type: TypeInteger, ForeignKey: true, RefTable: parent}
}

func (v *flatView) empty() bool {
	return len(v.Columns) == 0 && len(v.Children) == 0
}

// prefixNames applies a discriminator prefix to every column and child-table
// working name in the view. Source paths already carry the request/response
// segment and stay untouched.
func (v *flatView) prefixNames(prefix string) {
	for i := range v.Columns {
		v.Columns[i].Name = prefix + nonEmptyName(v.Columns[i].Name, "body")
	}
	for i := range v.Children {
		v.Children[i].Name = prefix + nonEmptyName(v.Children[i].Name, "items")
	}
}

func nonEmptyName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
