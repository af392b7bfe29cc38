package compile

import (
	"strconv"
	"strings"
	"unicode"
)

// maxIdentifierLen is the shortest identifier limit among the targeted
// engines (PostgreSQL truncates at 63 bytes).
const maxIdentifierLen = 63

// NamingRegistry tracks every identifier assigned during one compile pass so
// names stay unique document-wide. One registry per compile call; it is never
// shared across concurrent compiles.
type NamingRegistry struct {
	tables  map[string]bool            // lower-cased table names
	columns map[string]map[string]bool // table -> lower-cased column names
}

// NewNamingRegistry returns an empty registry.
func NewNamingRegistry() *NamingRegistry {
	return &NamingRegistry{
		tables:  make(map[string]bool),
		columns: make(map[string]map[string]bool),
	}
}

// ResolveNames rewrites every table and column working name to a sanitized,
// globally unique identifier. Tables are processed strictly in slice order
// (document order) so the first claimant of a name keeps it unsuffixed and
// repeat compiles assign identical names.
func (r *NamingRegistry) ResolveNames(tables []TableDefinition) {
	// The planner keeps working names unique within a batch, so parent and
	// FK lookups through this map are unambiguous.
	finalNames := make(map[string]string, len(tables))

	for i := range tables {
		name := r.claimTable(sanitizeIdentifier(tables[i].WorkingName))
		tables[i].Name = name
		finalNames[tables[i].WorkingName] = name
	}

	for i := range tables {
		t := &tables[i]
		for j := range t.Columns {
			col := &t.Columns[j]
			col.Name = r.claimColumn(t.Name, sanitizeIdentifier(col.Name))
			if col.RefTable != "" {
				col.RefTable = finalNames[col.RefTable]
			}
		}
		if t.Parent != "" {
			t.Parent = finalNames[t.Parent]
		}
	}
}

func (r *NamingRegistry) claimTable(base string) string {
	return claim(r.tables, base)
}

func (r *NamingRegistry) claimColumn(table, base string) string {
	scope := r.columns[table]
	if scope == nil {
		scope = make(map[string]bool)
		r.columns[table] = scope
	}
	return claim(scope, base)
}

// claim registers base in the scope, appending deterministic numeric suffixes
// on collision. Uniqueness is checked case-insensitively.
func claim(scope map[string]bool, base string) string {
	if !scope[strings.ToLower(base)] {
		scope[strings.ToLower(base)] = true
		return base
	}
	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		candidate := truncateIdentifier(base, maxIdentifierLen-len(suffix)) + suffix
		if !scope[strings.ToLower(candidate)] {
			scope[strings.ToLower(candidate)] = true
			return candidate
		}
	}
}

// sanitizeIdentifier lower-cases, maps non-alphanumerics to underscores,
// guards against a leading digit and enforces the length limit.
func sanitizeIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLower(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return truncateIdentifier(out, maxIdentifierLen)
}

func truncateIdentifier(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
