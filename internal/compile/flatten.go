package compile

import (
	"strconv"
	"strings"
)

// ColumnDescriptor is one flattened field destined to become a table column.
// Name carries the pre-sanitization working name; the naming pass rewrites it.
type ColumnDescriptor struct {
	// Path is the fully-qualified source path into the original schema,
	// e.g. "response.user.address.city" or "request.tags[]". Paths are
	// unique within one operation's flattened set.
	Path        string
	Name        string
	Type        ScalarType
	Nullable    bool
	Repeated    bool // array-of-scalar origin; becomes a child value table
	Description string

	// Synthetic column roles. PrimaryKey marks the auto-increment identity
	// column added to every table; ForeignKey marks a child table's link
	// back to its parent, with RefTable holding the parent's working name
	// until naming resolves it.
	PrimaryKey bool
	ForeignKey bool
	RefTable   string
}

// ShadowField is a leaf from a non-authoritative polymorphic candidate. It
// contributes no column but stays visible to the vector-metadata stream so
// agents are not blind to skipped branches.
type ShadowField struct {
	Path        string
	Type        ScalarType
	Description string
	Candidate   int // 1-based index of the skipped candidate
}

// childSignal tells the planner to split an array-of-object field into its
// own table with a flattener pass over the item node.
type childSignal struct {
	Path string // source path of the array field
	Name string // working field name relative to the parent table
	Node *SchemaNode
}

// flatView is one schema tree flattened into columns, child-table signals and
// metadata-only shadow fields.
type flatView struct {
	Columns  []ColumnDescriptor
	Children []childSignal
	Shadow   []ShadowField
}

// flatten walks a resolved tree depth-first. Field order follows the tree's
// deterministic field order, which downstream stages preserve as column order.
func flatten(node *SchemaNode, path, name string, nullable bool, out *flatView) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindScalar:
		out.Columns = append(out.Columns, ColumnDescriptor{
			Path:        path,
			Name:        name,
			Type:        node.Scalar,
			Nullable:    nullable || node.Nullable,
			Description: node.Description,
		})

	case KindObject:
		for _, f := range node.Fields {
			flatten(f.Node, joinPath(path, f.Name), joinName(name, f.Name), nullable || !f.Required, out)
		}

	case KindArray:
		flattenArray(node, path, name, nullable, out)

	case KindPolymorphic:
		// Candidate 0 is authoritative for columns; the rest contribute
		// shadow fields only.
		flatten(node.Candidates[0], path, name, nullable, out)
		for i, alt := range node.Candidates[1:] {
			collectShadow(alt, path, i+1, &out.Shadow)
		}
	}
}

func flattenArray(node *SchemaNode, path, name string, nullable bool, out *flatView) {
	elem := node.Elem
	if elem == nil {
		out.Columns = append(out.Columns, ColumnDescriptor{
			Path: path, Name: name, Type: TypeUnstructured,
			Nullable: nullable || node.Nullable, Description: node.Description,
		})
		return
	}

	// Arrays of polymorphic items follow the authoritative candidate, same
	// as plain polymorphic fields.
	if elem.Kind == KindPolymorphic {
		for i, alt := range elem.Candidates[1:] {
			collectShadow(alt, path+"[]", i+1, &out.Shadow)
		}
		elem = elem.Candidates[0]
	}

	switch elem.Kind {
	case KindObject:
		out.Children = append(out.Children, childSignal{
			Path: path,
			Name: name,
			Node: elem,
		})
	case KindScalar:
		out.Columns = append(out.Columns, ColumnDescriptor{
			Path:        path,
			Name:        name,
			Type:        elem.Scalar,
			Nullable:    nullable || node.Nullable,
			Repeated:    true,
			Description: firstNonEmpty(node.Description, elem.Description),
		})
	default:
		// Arrays of arrays carry no stable column shape; keep the field as
		// an opaque repeated value.
		out.Columns = append(out.Columns, ColumnDescriptor{
			Path:        path,
			Name:        name,
			Type:        TypeUnstructured,
			Nullable:    nullable || node.Nullable,
			Repeated:    true,
			Description: node.Description,
		})
	}
}

// collectShadow gathers every leaf of a skipped polymorphic candidate.
func collectShadow(node *SchemaNode, path string, candidate int, out *[]ShadowField) {
	if node == nil {
		return
	}
	switch node.Kind {
	case KindScalar:
		*out = append(*out, ShadowField{
			Path:        path,
			Type:        node.Scalar,
			Description: node.Description,
			Candidate:   candidate,
		})
	case KindObject:
		for _, f := range node.Fields {
			collectShadow(f.Node, joinPath(path, f.Name), candidate, out)
		}
	case KindArray:
		collectShadow(node.Elem, path+"[]", candidate, out)
	case KindPolymorphic:
		// Alternatives nested inside a skipped branch get a branch marker so
		// sibling leaves sharing a name keep distinct paths and record IDs.
		for i, alt := range node.Candidates {
			collectShadow(alt, path+"|alt"+strconv.Itoa(i), candidate, out)
		}
	}
}

// joinName builds a working column name from nested field names. Unlike
// source paths, names use underscores so they survive sanitization intact.
func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// workingName turns a source path fragment into a usable working identifier.
func workingName(path string) string {
	s := strings.ReplaceAll(path, "[]", "")
	return strings.ReplaceAll(s, ".", "_")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
