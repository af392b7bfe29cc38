package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// NodeKind classifies a resolved schema node.
type NodeKind string

const (
	KindScalar      NodeKind = "scalar"
	KindObject      NodeKind = "object"
	KindArray       NodeKind = "array"
	KindPolymorphic NodeKind = "polymorphic"
)

// ScalarType is the column-level type a leaf resolves to. Unstructured marks
// schemas the resolver could not (or chose not to) break down further; they
// surface as opaque text columns.
type ScalarType string

const (
	TypeString       ScalarType = "string"
	TypeNumber       ScalarType = "number"
	TypeInteger      ScalarType = "integer"
	TypeBoolean      ScalarType = "boolean"
	TypeUnstructured ScalarType = "unstructured"
)

const componentPrefix = "#/components/schemas/"

// SchemaNode is one node of a resolved, finite schema tree. Trees are owned
// by a single compile pass and never mutated after resolution.
type SchemaNode struct {
	Kind        NodeKind
	Scalar      ScalarType // set for KindScalar
	Nullable    bool
	Description string

	// Fields holds an object's named children in deterministic order.
	Fields []FieldEntry
	// Elem is an array's item node.
	Elem *SchemaNode
	// Candidates holds a polymorphic node's resolved alternatives. Index 0
	// is the authoritative candidate for column derivation.
	Candidates []*SchemaNode

	// Ref is the component path this node was resolved through, when any.
	Ref string
}

// FieldEntry is one named child of an object node. Required reflects the
// parent schema's required list and feeds column nullability.
type FieldEntry struct {
	Name     string
	Required bool
	Node     *SchemaNode
}

// resolver resolves raw schema fragments against the document's component
// table. It never aborts on unsupported constructs; only dangling references
// are fatal.
type resolver struct {
	components openapi3.Schemas
	op         string // operation ID, for warning context
	warnings   *[]Warning
}

func newResolver(doc *openapi3.T, operationID string, warnings *[]Warning) *resolver {
	var components openapi3.Schemas
	if doc != nil && doc.Components != nil {
		components = doc.Components.Schemas
	}
	return &resolver{components: components, op: operationID, warnings: warnings}
}

func (r *resolver) warn(path, reason string) {
	*r.warnings = append(*r.warnings, Warning{
		OperationID: r.op,
		Path:        path,
		Reason:      reason,
	})
}

// Resolve turns a schema fragment into a SchemaNode tree. The seen set tracks
// $ref names on the current resolution path only; the same component may
// legitimately appear in sibling branches.
func (r *resolver) Resolve(ref *openapi3.SchemaRef, path string) (*SchemaNode, error) {
	return r.resolve(ref, path, make(map[string]bool))
}

func (r *resolver) resolve(ref *openapi3.SchemaRef, path string, seen map[string]bool) (*SchemaNode, error) {
	if ref == nil {
		return &SchemaNode{Kind: KindScalar, Scalar: TypeUnstructured}, nil
	}

	if ref.Ref != "" {
		name, ok := strings.CutPrefix(ref.Ref, componentPrefix)
		if !ok {
			// External or non-component refs are out of scope (multi-file
			// bundling is not supported); degrade instead of failing.
			r.warn(path, fmt.Sprintf("unsupported reference %q treated as unstructured", ref.Ref))
			return &SchemaNode{Kind: KindScalar, Scalar: TypeUnstructured, Ref: ref.Ref}, nil
		}
		if seen[name] {
			r.warn(path, fmt.Sprintf("reference cycle through %q cut; field kept as unstructured", name))
			return &SchemaNode{Kind: KindScalar, Scalar: TypeUnstructured, Ref: ref.Ref}, nil
		}
		target, exists := r.components[name]
		if !exists {
			return nil, fmt.Errorf("%w: dangling $ref %q at %s", ErrMalformedSchema, ref.Ref, path)
		}
		seen[name] = true
		node, err := r.resolve(target, path, seen)
		delete(seen, name)
		if err != nil {
			return nil, err
		}
		node.Ref = ref.Ref
		return node, nil
	}

	s := ref.Value
	if s == nil {
		return &SchemaNode{Kind: KindScalar, Scalar: TypeUnstructured}, nil
	}

	switch {
	case len(s.AllOf) > 0:
		return r.resolveAllOf(s, path, seen)
	case len(s.OneOf) > 0:
		return r.resolvePolymorphic(s, s.OneOf, path, seen)
	case len(s.AnyOf) > 0:
		return r.resolvePolymorphic(s, s.AnyOf, path, seen)
	}

	switch {
	case typeIs(s, openapi3.TypeObject) || len(s.Properties) > 0:
		return r.resolveObject(s, path, seen)

	case typeIs(s, openapi3.TypeArray) || s.Items != nil:
		elem, err := r.resolve(s.Items, path+"[]", seen)
		if err != nil {
			return nil, err
		}
		return &SchemaNode{
			Kind:        KindArray,
			Nullable:    s.Nullable,
			Description: s.Description,
			Elem:        elem,
		}, nil

	case typeIs(s, openapi3.TypeString):
		return scalarNode(s, TypeString), nil
	case typeIs(s, openapi3.TypeInteger):
		return scalarNode(s, TypeInteger), nil
	case typeIs(s, openapi3.TypeNumber):
		return scalarNode(s, TypeNumber), nil
	case typeIs(s, openapi3.TypeBoolean):
		return scalarNode(s, TypeBoolean), nil
	}

	if s.Type != nil && !s.Type.Is(openapi3.TypeNull) {
		r.warn(path, fmt.Sprintf("unsupported schema type %v treated as unstructured", s.Type.Slice()))
	}
	return scalarNode(s, TypeUnstructured), nil
}

// resolveObject builds an object node with children in sorted property order.
// An object without properties carries no column structure and degrades to an
// unstructured leaf.
func (r *resolver) resolveObject(s *openapi3.Schema, path string, seen map[string]bool) (*SchemaNode, error) {
	if len(s.Properties) == 0 {
		return scalarNode(s, TypeUnstructured), nil
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	node := &SchemaNode{
		Kind:        KindObject,
		Nullable:    s.Nullable,
		Description: s.Description,
		Fields:      make([]FieldEntry, 0, len(names)),
	}
	for _, name := range names {
		child, err := r.resolve(s.Properties[name], joinPath(path, name), seen)
		if err != nil {
			return nil, err
		}
		node.Fields = append(node.Fields, FieldEntry{
			Name:     name,
			Required: required[name],
			Node:     child,
		})
	}
	return node, nil
}

// resolveAllOf merges every member's properties into a single object node.
// When two members declare the same property, the first write wins and the
// conflict is recorded as a merge-collision warning.
func (r *resolver) resolveAllOf(s *openapi3.Schema, path string, seen map[string]bool) (*SchemaNode, error) {
	merged := &SchemaNode{
		Kind:        KindObject,
		Nullable:    s.Nullable,
		Description: s.Description,
	}
	have := make(map[string]ScalarType)

	// The allOf host may declare its own properties; treat it as the first
	// member so its fields win collisions.
	members := make([]*openapi3.SchemaRef, 0, len(s.AllOf)+1)
	if len(s.Properties) > 0 {
		host := *s
		host.AllOf = nil
		members = append(members, &openapi3.SchemaRef{Value: &host})
	}
	members = append(members, s.AllOf...)

	for _, member := range members {
		node, err := r.resolve(member, path, seen)
		if err != nil {
			return nil, err
		}
		if node.Kind != KindObject {
			r.warn(path, "non-object allOf member contributes no fields")
			continue
		}
		for _, f := range node.Fields {
			prev, taken := have[f.Name]
			if taken {
				if leafType(f.Node) != prev {
					r.warn(joinPath(path, f.Name), "allOf merge collision; first declaration kept")
				}
				continue
			}
			have[f.Name] = leafType(f.Node)
			merged.Fields = append(merged.Fields, f)
		}
	}

	if len(merged.Fields) == 0 {
		return scalarNode(s, TypeUnstructured), nil
	}
	// Keep merged output order-stable regardless of member order quirks.
	sort.SliceStable(merged.Fields, func(i, j int) bool {
		return merged.Fields[i].Name < merged.Fields[j].Name
	})
	return merged, nil
}

// resolvePolymorphic resolves every candidate of a oneOf/anyOf. Candidate 0
// drives column derivation downstream; the rest survive only in the
// field-metadata stream, which the recorded warning points at.
func (r *resolver) resolvePolymorphic(s *openapi3.Schema, refs openapi3.SchemaRefs, path string, seen map[string]bool) (*SchemaNode, error) {
	node := &SchemaNode{
		Kind:        KindPolymorphic,
		Nullable:    s.Nullable,
		Description: s.Description,
		Candidates:  make([]*SchemaNode, 0, len(refs)),
	}
	for _, ref := range refs {
		candidate, err := r.resolve(ref, path, seen)
		if err != nil {
			return nil, err
		}
		node.Candidates = append(node.Candidates, candidate)
	}
	if len(node.Candidates) == 0 {
		return scalarNode(s, TypeUnstructured), nil
	}
	if len(node.Candidates) > 1 {
		r.warn(path, fmt.Sprintf("polymorphic schema: columns follow first candidate, %d alternative(s) kept in metadata only", len(node.Candidates)-1))
	}
	return node, nil
}

func scalarNode(s *openapi3.Schema, t ScalarType) *SchemaNode {
	return &SchemaNode{
		Kind:        KindScalar,
		Scalar:      t,
		Nullable:    s.Nullable,
		Description: s.Description,
	}
}

// leafType gives a coarse type for collision detection during allOf merges.
func leafType(n *SchemaNode) ScalarType {
	if n == nil {
		return TypeUnstructured
	}
	switch n.Kind {
	case KindScalar:
		return n.Scalar
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "polymorphic"
	}
}

func typeIs(s *openapi3.Schema, t string) bool {
	return s.Type != nil && s.Type.Is(t)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
