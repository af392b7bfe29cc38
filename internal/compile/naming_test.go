package compile

import (
	"strings"
	"testing"
)

func TestSanitizeIdentifier(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"getUser", "getuser"},
		{"Get-User Profile!", "get_user_profile_"},
		{"user.name", "user_name"},
		{"1stOp", "_1stop"},
		{"", "_"},
		{"UPPER", "upper"},
	}
	for _, c := range cases {
		if got := sanitizeIdentifier(c.in); got != c.want {
			t.Errorf("sanitizeIdentifier(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeIdentifier_Truncates(t *testing.T) {
	long := strings.Repeat("a", 100)
	if got := sanitizeIdentifier(long); len(got) != maxIdentifierLen {
		t.Errorf("length = %d, want %d", len(got), maxIdentifierLen)
	}
}

func TestClaim_SuffixesCollisions(t *testing.T) {
	scope := map[string]bool{}
	if got := claim(scope, "users"); got != "users" {
		t.Errorf("first claim = %q", got)
	}
	if got := claim(scope, "users"); got != "users_2" {
		t.Errorf("second claim = %q, want users_2", got)
	}
	if got := claim(scope, "users"); got != "users_3" {
		t.Errorf("third claim = %q, want users_3", got)
	}
	// Case-insensitive collision
	if got := claim(scope, "Users"); got != "Users_4" {
		t.Errorf("case-insensitive claim = %q, want Users_4", got)
	}
}

func TestClaim_SuffixStaysWithinLimit(t *testing.T) {
	scope := map[string]bool{}
	long := strings.Repeat("x", maxIdentifierLen)
	claim(scope, long)
	got := claim(scope, long)
	if len(got) > maxIdentifierLen {
		t.Errorf("suffixed identifier exceeds limit: %d", len(got))
	}
	if !strings.HasSuffix(got, "_2") {
		t.Errorf("expected _2 suffix, got %q", got)
	}
}

func TestResolveNames_RewritesForeignKeys(t *testing.T) {
	tables := []TableDefinition{
		{
			WorkingName: "List Orders",
			Columns:     []ColumnDescriptor{{Name: pkColumnName, PrimaryKey: true}},
		},
		{
			WorkingName: "List Orders_items",
			Parent:      "List Orders",
			Columns: []ColumnDescriptor{
				{Name: pkColumnName, PrimaryKey: true},
				{Name: fkColumnName, ForeignKey: true, RefTable: "List Orders"},
			},
		},
	}

	NewNamingRegistry().ResolveNames(tables)

	if tables[0].Name != "list_orders" {
		t.Errorf("root name = %q", tables[0].Name)
	}
	if tables[1].Parent != "list_orders" {
		t.Errorf("parent not rewritten: %q", tables[1].Parent)
	}
	if tables[1].Columns[1].RefTable != "list_orders" {
		t.Errorf("foreign key not rewritten: %q", tables[1].Columns[1].RefTable)
	}
}
