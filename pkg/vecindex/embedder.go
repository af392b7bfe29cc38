package vecindex

import "math"

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Dim() int
	Embed(text string) []float64
}

// HashEmbedder is the default zero-dependency embedder: it folds the text's
// rune sum into 8 byte-sized buckets. Crude, but deterministic and
// dependency-free; swap in a real model through the Embedder interface when
// search quality matters.
type HashEmbedder struct{}

// Dim returns 8.
func (HashEmbedder) Dim() int { return 8 }

// Embed returns the 8-dimensional fold of text. Empty text embeds to the
// zero vector.
func (HashEmbedder) Embed(text string) []float64 {
	v := make([]float64, 8)
	if text == "" {
		return v
	}
	var total uint32
	for _, r := range text {
		total += uint32(r)
	}
	for i := 0; i < 8; i++ {
		v[i] = float64((total>>(uint(i)*4))&0xFF) / 255
	}
	return v
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero magnitude.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
