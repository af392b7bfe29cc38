package vecindex_test

import (
	"testing"

	"github.com/oastable/oastable"
	"github.com/oastable/oastable/pkg/vecindex"
)

func TestRecordsFromFields(t *testing.T) {
	fields := []oastable.FieldRecord{
		{
			ID:          "getuser.response.email",
			Table:       "getuser",
			Column:      "email",
			Path:        "response.email",
			Type:        "string",
			Description: "primary address",
			OperationID: "getUser",
			Method:      "GET",
			HTTPPath:    "/users/{id}",
		},
		{
			ID:               "getuser.response.lives#1",
			Table:            "getuser",
			Path:             "response.lives",
			Type:             "integer",
			OperationID:      "getUser",
			SkippedCandidate: true,
			Candidate:        1,
		},
	}

	records := vecindex.RecordsFromFields(fields)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "getuser.response.email" || records[0].Column != "email" {
		t.Errorf("column record mismapped: %+v", records[0])
	}
	if records[0].Type != "string" {
		t.Errorf("type = %q, want string", records[0].Type)
	}
	if !records[1].SkippedCandidate || records[1].Candidate != 1 {
		t.Errorf("skipped-candidate flags lost: %+v", records[1])
	}
}
