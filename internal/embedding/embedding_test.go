package embedding

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEncoder struct {
	dim   int
	calls int
	err   error
}

func (c *countingEncoder) Dimension() int { return c.dim }

func (c *countingEncoder) Encode(_ context.Context, tokens []string) ([][]float32, []int, error) {
	c.calls++
	if c.err != nil {
		return nil, nil, c.err
	}
	vectors := make([][]float32, len(tokens)+1)
	mask := make([]int, len(tokens)+1)
	for i := range tokens {
		vectors[i] = []float32{1, float32(i)}
		mask[i] = 1
	}
	vectors[len(tokens)] = []float32{100, 100}
	return vectors, mask, nil
}

func TestMeanPool(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float32
		mask    []int
		want    []float32
		wantErr bool
	}{
		{name: "masked padding ignored", vectors: [][]float32{{1, 2}, {3, 4}, {9, 9}}, mask: []int{1, 1, 0}, want: []float32{2, 3}},
		{name: "all masked", vectors: [][]float32{{1, 2}}, mask: []int{0}, want: []float32{0, 0}},
		{name: "empty", want: []float32{0, 0}},
		{name: "length mismatch", vectors: [][]float32{{1, 2}}, mask: []int{1, 1}, wantErr: true},
		{name: "wrong width", vectors: [][]float32{{1}}, mask: []int{1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MeanPool(tc.vectors, tc.mask, 2)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, Cosine([]float32{1}, []float32{1, 1}))
	assert.Zero(t, Cosine(nil, nil))
}

func TestModelBlankTextSkipsEncoder(t *testing.T) {
	enc := &countingEncoder{dim: 2}
	m, err := NewModel(enc)
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t", "!!! ---"} {
		vec, err := m.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0}, vec)
	}
	assert.Zero(t, enc.calls)
}

func TestModelPoolsWithMask(t *testing.T) {
	enc := &countingEncoder{dim: 2}
	m, err := NewModel(enc)
	require.NoError(t, err)

	vec, err := m.Embed(context.Background(), "go kubernetes docker")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, vec)
	assert.Equal(t, 1, enc.calls)
}

func TestModelEncoderError(t *testing.T) {
	boom := errors.New("boom")
	m, err := NewModel(&countingEncoder{dim: 2, err: boom})
	require.NoError(t, err)

	_, err = m.Embed(context.Background(), "python")
	require.ErrorIs(t, err, boom)
}

func TestNewModelValidation(t *testing.T) {
	_, err := NewModel(nil)
	require.Error(t, err)
	_, err = NewModel(&countingEncoder{})
	require.Error(t, err)
}

func TestLocalModel(t *testing.T) {
	m := NewLocal(0)
	require.Equal(t, DefaultDimension, m.Dimension())
	ctx := context.Background()

	a, err := m.Embed(ctx, "Developed REST services in Python and Django")
	require.NoError(t, err)
	b, err := m.Embed(ctx, "Developed REST services in Python and Django")
	require.NoError(t, err)
	assert.Equal(t, a, b, "embedding must be deterministic")
	assert.Len(t, a, DefaultDimension)

	upper, err := m.Embed(ctx, "DEVELOPED REST SERVICES IN PYTHON AND DJANGO")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Cosine(a, upper), 1e-6)

	related, err := m.Embed(ctx, "python django")
	require.NoError(t, err)
	unrelated, err := m.Embed(ctx, "forklift warehouse logistics")
	require.NoError(t, err)
	assert.Greater(t, Cosine(a, related), Cosine(a, unrelated))
}

func TestTokenizer(t *testing.T) {
	tok := Tokenizer{MaxTokens: 5}
	assert.Equal(t, []string{"c++", "c#", "node.js", "go"}, tok.Tokenize("C++, C#; Node.js Go."))
	assert.Empty(t, tok.Tokenize("  ,,, "))

	long := strings.Repeat("word ", 300)
	assert.Len(t, Tokenizer{}.Tokenize(long), MaxTokens)
	assert.Len(t, tok.Tokenize(long), 5)
}

func TestHashEncoderPadding(t *testing.T) {
	enc := NewHashEncoder(16)
	vectors, mask, err := enc.Encode(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, vectors, 8)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0, 0, 0}, mask)

	var norm float64
	for _, v := range vectors[0] {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = enc.Encode(ctx, []string{"a"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestClip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "under limit", text: "Go and  SQL", limit: 5, want: "Go and  SQL"},
		{name: "cut keeps spelling", text: "Node.js, C++ and Go\nservices", limit: 3, want: "Node.js, C++ and"},
		{name: "exact limit", text: "one two", limit: 2, want: "one two"},
		{name: "leading space", text: "  one two three", limit: 1, want: "  one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clip(tt.text, tt.limit))
		})
	}
}
