package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/embedding"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultEmbeddingModel     = "gemini-embedding-001"
	defaultEmbeddingDimension = 768
	defaultRequestsPerSecond  = 5
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// EmbedderOptions configure an Embedder.
type EmbedderOptions struct {
	Model             string
	Dimension         int
	RequestsPerSecond float64
}

// Embedder produces sentence embeddings through the Gemini embedding API.
type Embedder struct {
	models    contentEmbedder
	model     string
	dimension int
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewEmbedder creates an Embedder on top of an existing genai client.
func NewEmbedder(client *genai.Client, opts EmbedderOptions, log *zap.Logger) (*Embedder, error) {
	if client == nil {
		return nil, errors.New("genai client is required")
	}
	return newEmbedder(client.Models, opts, log), nil
}

func newEmbedder(models contentEmbedder, opts EmbedderOptions, log *zap.Logger) *Embedder {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultEmbeddingModel
	}

	dimension := opts.Dimension
	if dimension <= 0 {
		dimension = defaultEmbeddingDimension
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	return &Embedder{
		models:    models,
		model:     model,
		dimension: dimension,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    logger.WithCommonFields(log, Provider, model),
	}
}

// Dimension is the length of every vector returned by Embed.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// Embed returns the embedding of text, clipped to embedding.MaxTokens
// words. Blank text yields a zero vector without a remote call.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, e.dimension), nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for embedding quota: %w", err)
	}

	text = embedding.Clip(text, embedding.MaxTokens)

	dim := int32(e.dimension)
	resp, err := e.models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			TaskType:             "SEMANTIC_SIMILARITY",
			OutputDimensionality: &dim,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	if len(values) != e.dimension {
		logger.OrNop(e.logger).Warn("unexpected embedding dimension",
			zap.Int("expected", e.dimension),
			zap.Int("got", len(values)),
		)
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", e.dimension, len(values))
	}

	return values, nil
}
