package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	JobsFile  string           `mapstructure:"jobs-file" validate:"required"`
	Store     string           `mapstructure:"store" validate:"required"`
	Matching  *MatchingConfig  `mapstructure:"matching" validate:"required"`
	Embedding *EmbeddingConfig `mapstructure:"embedding" validate:"required"`
	AI        *AIConfig        `mapstructure:"ai" validate:"required"`
	Interview *InterviewConfig `mapstructure:"interview" validate:"required"`
}

type MatchingConfig struct {
	Semantic      bool          `mapstructure:"semantic"`
	Threshold     float64       `mapstructure:"threshold" validate:"gt=0,lte=1"`
	EvidenceLimit int           `mapstructure:"evidence-limit" validate:"min=1,max=20"`
	Concurrency   int           `mapstructure:"concurrency" validate:"min=1,max=64"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider" validate:"oneof=local gemini"`
	Dimension int    `mapstructure:"dimension" validate:"min=8,max=4096"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type GeminiConfig struct {
	APIKey            string  `mapstructure:"api-key"`
	APIKeyFile        string  `mapstructure:"api-key-file"`
	Model             string  `mapstructure:"model" validate:"required"`
	EmbeddingModel    string  `mapstructure:"embedding-model" validate:"required"`
	MaxRetries        int     `mapstructure:"max-retries" validate:"min=1,max=10"`
	MaxLogLength      int     `mapstructure:"max-log-length" validate:"min=0"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second" validate:"gt=0"`
}

type InterviewConfig struct {
	Questions int `mapstructure:"questions" validate:"min=1,max=20"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("jobs-file", "jobs.yaml")
	v.SetDefault("store", "hirelens.db")

	v.SetDefault("matching.semantic", false)
	v.SetDefault("matching.threshold", 0.5)
	v.SetDefault("matching.evidence-limit", 3)
	v.SetDefault("matching.concurrency", 4)
	v.SetDefault("matching.timeout", "30s")

	v.SetDefault("embedding.provider", "local")
	v.SetDefault("embedding.dimension", 384)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.embedding-model", "gemini-embedding-001")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 500)
	v.SetDefault("ai.gemini.requests-per-second", 5)

	v.SetDefault("interview.questions", 5)
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if config.Embedding != nil {
		config.Embedding.Provider = strings.ToLower(strings.TrimSpace(config.Embedding.Provider))
	}
	if config.AI != nil {
		config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	err := validator.New().Struct(config)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
