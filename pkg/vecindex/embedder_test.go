package vecindex_test

import (
	"math"
	"testing"

	"github.com/oastable/oastable/pkg/vecindex"
)

func TestHashEmbedder_Dim(t *testing.T) {
	e := vecindex.HashEmbedder{}
	if e.Dim() != 8 {
		t.Fatalf("dim = %d, want 8", e.Dim())
	}
	if got := len(e.Embed("anything")); got != 8 {
		t.Fatalf("vector length = %d, want 8", got)
	}
}

func TestHashEmbedder_EmptyText(t *testing.T) {
	for i, v := range (vecindex.HashEmbedder{}).Embed("") {
		if v != 0 {
			t.Errorf("component %d = %f, want 0", i, v)
		}
	}
}

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := vecindex.HashEmbedder{}
	a := e.Embed("listUsers email user email address")
	b := e.Embed("listUsers email user email address")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestHashEmbedder_KnownValue(t *testing.T) {
	// "a" folds to 97: component i is ((97 >> 4i) & 0xFF) / 255.
	v := (vecindex.HashEmbedder{}).Embed("a")
	if got, want := v[0], 97.0/255; math.Abs(got-want) > 1e-12 {
		t.Errorf("v[0] = %f, want %f", got, want)
	}
	if got, want := v[1], 6.0/255; math.Abs(got-want) > 1e-12 {
		t.Errorf("v[1] = %f, want %f", got, want)
	}
	for i := 2; i < 8; i++ {
		if v[i] != 0 {
			t.Errorf("v[%d] = %f, want 0", i, v[i])
		}
	}
}

func TestCosine(t *testing.T) {
	a := []float64{1, 0, 0}
	if got := vecindex.Cosine(a, a); math.Abs(got-1) > 1e-12 {
		t.Errorf("self similarity = %f, want 1", got)
	}
	if got := vecindex.Cosine(a, []float64{0, 1, 0}); got != 0 {
		t.Errorf("orthogonal similarity = %f, want 0", got)
	}
	if got := vecindex.Cosine(a, []float64{0, 0, 0}); got != 0 {
		t.Errorf("zero-vector similarity = %f, want 0", got)
	}
}

func TestRecordText(t *testing.T) {
	r := vecindex.Record{
		OperationID: "getUser",
		Column:      "email",
		Description: "primary address",
	}
	if got := r.Text(); got != "getUser email primary address" {
		t.Errorf("Text() = %q", got)
	}
}
