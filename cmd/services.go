package cmd

import (
	"context"
	"fmt"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/ai/gemini"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/detector"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/embedding"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/secrets"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/segment"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// services lazily builds the remote clients shared by the commands.
type services struct {
	ctx    context.Context
	config *Config
	logger *zap.Logger

	client    *genai.Client
	generator *gemini.Generator
}

func newServices(ctx context.Context, config *Config, logger *zap.Logger) *services {
	return &services{ctx: ctx, config: config, logger: logger}
}

func (s *services) genaiClient() (*genai.Client, error) {
	if s.client != nil {
		return s.client, nil
	}

	gcfg := s.config.AI.Gemini
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	client, err := gemini.NewClient(s.ctx, apiKey)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// completer returns the JSON-mode generator used by extraction, questions and grading.
func (s *services) completer() (*gemini.Generator, error) {
	if s.generator != nil {
		return s.generator, nil
	}

	client, err := s.genaiClient()
	if err != nil {
		return nil, err
	}

	gcfg := s.config.AI.Gemini
	genLogger := s.logger.With(zap.Int("ai_retry_attempts", gcfg.MaxRetries))

	generator, err := gemini.NewGenerator(client, gemini.Options{
		Model:        gcfg.Model,
		MaxRetries:   gcfg.MaxRetries,
		MaxLogLength: gcfg.MaxLogLength,
		JSON:         true,
	}, genLogger)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}
	s.generator = generator
	return generator, nil
}

func (s *services) embedder() (embedding.Embedder, error) {
	ecfg := s.config.Embedding
	if ecfg.Provider != "gemini" {
		return embedding.NewLocal(ecfg.Dimension), nil
	}

	client, err := s.genaiClient()
	if err != nil {
		return nil, err
	}

	gcfg := s.config.AI.Gemini
	return gemini.NewEmbedder(client, gemini.EmbedderOptions{
		Model:             gcfg.EmbeddingModel,
		Dimension:         ecfg.Dimension,
		RequestsPerSecond: gcfg.RequestsPerSecond,
	}, s.logger)
}

func (s *services) detector() (*detector.Detector, error) {
	emb, err := s.embedder()
	if err != nil {
		return nil, fmt.Errorf("building embedder: %w", err)
	}

	mcfg := s.config.Matching
	return detector.New(emb, segment.New(s.logger), detector.Options{
		Threshold:     mcfg.Threshold,
		EvidenceLimit: mcfg.EvidenceLimit,
		Concurrency:   mcfg.Concurrency,
		Timeout:       mcfg.Timeout,
	}, s.logger)
}
