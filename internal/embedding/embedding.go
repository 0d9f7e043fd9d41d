// Package embedding turns text into fixed-size vectors for semantic comparison.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Embedder maps text to a vector of Dimension() floats.
// Implementations are safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Encoder produces one vector per token. The returned mask has the same
// length as the vectors; padding positions carry 0.
type Encoder interface {
	Encode(ctx context.Context, tokens []string) ([][]float32, []int, error)
	Dimension() int
}

// Model is a tokenizer plus encoder pooled into one sentence vector.
type Model struct {
	tokenizer Tokenizer
	encoder   Encoder
}

var _ Embedder = (*Model)(nil)

// NewModel builds a Model around enc with the default tokenizer.
func NewModel(enc Encoder) (*Model, error) {
	if enc == nil {
		return nil, errors.New("encoder is required")
	}
	if enc.Dimension() <= 0 {
		return nil, fmt.Errorf("encoder dimension must be positive, got %d", enc.Dimension())
	}
	return &Model{tokenizer: Tokenizer{MaxTokens: MaxTokens}, encoder: enc}, nil
}

// NewLocal returns a Model backed by the deterministic HashEncoder.
func NewLocal(dimension int) *Model {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Model{tokenizer: Tokenizer{MaxTokens: MaxTokens}, encoder: NewHashEncoder(dimension)}
}

func (m *Model) Dimension() int {
	return m.encoder.Dimension()
}

// Embed tokenizes text, encodes the tokens and mean-pools them with the
// attention mask. Blank text returns a zero vector without encoding.
func (m *Model) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return Zero(m.Dimension()), nil
	}

	tokens := m.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return Zero(m.Dimension()), nil
	}

	vectors, mask, err := m.encoder.Encode(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}

	return MeanPool(vectors, mask, m.Dimension())
}

// Zero returns a zero vector of length dim.
func Zero(dim int) []float32 {
	if dim < 0 {
		dim = 0
	}
	return make([]float32, dim)
}

// MeanPool averages the token vectors whose mask is non-zero.
// When every position is masked out the zero vector is returned.
func MeanPool(vectors [][]float32, mask []int, dim int) ([]float32, error) {
	if len(vectors) != len(mask) {
		return nil, fmt.Errorf("mask length %d does not match %d token vectors", len(mask), len(vectors))
	}

	sum := make([]float64, dim)
	var weight float64
	for i, vec := range vectors {
		if mask[i] == 0 {
			continue
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("token vector %d has dimension %d, expected %d", i, len(vec), dim)
		}
		w := float64(mask[i])
		for j, v := range vec {
			sum[j] += float64(v) * w
		}
		weight += w
	}

	out := Zero(dim)
	if weight == 0 {
		return out, nil
	}
	for j := range sum {
		out[j] = float32(sum[j] / weight)
	}
	return out, nil
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. Vectors of
// different length or with zero norm give 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}
