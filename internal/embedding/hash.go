package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// DefaultDimension matches the width of common MiniLM sentence models.
const DefaultDimension = 384

const (
	padMultiple   = 8
	trigramWeight = 0.5
)

// HashEncoder is a deterministic, dependency-free encoder. Each token is
// projected by feature hashing of the token itself and of its character
// trigrams, so related word forms ("develop", "developer") share features.
type HashEncoder struct {
	dim int
}

var _ Encoder = (*HashEncoder)(nil)

func NewHashEncoder(dim int) *HashEncoder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashEncoder{dim: dim}
}

func (h *HashEncoder) Dimension() int {
	return h.dim
}

// Encode pads the sequence to a multiple of 8 positions; padded positions
// carry a zero vector and mask 0.
func (h *HashEncoder) Encode(ctx context.Context, tokens []string) ([][]float32, []int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	length := len(tokens)
	if rem := length % padMultiple; rem != 0 {
		length += padMultiple - rem
	}

	vectors := make([][]float32, length)
	mask := make([]int, length)
	for i := range vectors {
		if i >= len(tokens) {
			vectors[i] = Zero(h.dim)
			continue
		}
		vectors[i] = h.token(tokens[i])
		mask[i] = 1
	}
	return vectors, mask, nil
}

func (h *HashEncoder) token(tok string) []float32 {
	vec := make([]float32, h.dim)
	h.add(vec, "w:"+tok, 1)

	padded := []rune("<" + tok + ">")
	for i := 0; i+3 <= len(padded); i++ {
		h.add(vec, "t:"+string(padded[i:i+3]), trigramWeight)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func (h *HashEncoder) add(vec []float32, feature string, weight float32) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}
