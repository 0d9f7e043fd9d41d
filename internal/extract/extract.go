// Package extract turns raw resume text into a structured candidate profile.
package extract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/ai"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/utils"
	"go.uber.org/zap"
)

// MaxResumeRunes bounds the resume text sent to the model.
const MaxResumeRunes = 8000

// FallbackSummary is the summary of a profile the model could not produce.
const FallbackSummary = "Could not parse resume."

const defaultMaxLogLength = 200

// ErrEmptyResume is returned for blank resume text.
var ErrEmptyResume = errors.New("resume text is empty")

//go:embed prompt.md
var promptTemplate string

//go:embed profile.schema.json
var profileSchema string

// Profile is the structured view of a resume.
type Profile struct {
	CandidateName   string   `mapstructure:"candidate_name" json:"candidate_name"`
	Email           string   `mapstructure:"email" json:"email"`
	Phone           string   `mapstructure:"phone" json:"phone"`
	Skills          []string `mapstructure:"skills" json:"skills"`
	ExperienceYears int      `mapstructure:"experience_years" json:"experience_years"`
	Summary         string   `mapstructure:"summary" json:"summary"`
	// Fallback is set when the model answer could not be used.
	Fallback bool `mapstructure:"-" json:"fallback,omitempty"`
}

// FallbackProfile is returned whenever extraction fails.
func FallbackProfile() *Profile {
	return &Profile{Skills: []string{}, Summary: FallbackSummary, Fallback: true}
}

type Extractor struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(completer ai.Completer, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Extractor{completer: completer, logger: logger.OrNop(log), maxLogLen: maxLogLength}
}

// Extract asks the model for a profile. Transport, parse and schema
// failures are logged and produce FallbackProfile; only blank input is an error.
func (e *Extractor) Extract(ctx context.Context, rawText string) (*Profile, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, ErrEmptyResume
	}

	if e.completer == nil {
		return nil, errors.New("extractor has no completer")
	}

	prompt := buildPrompt(utils.TruncateRunes(text, MaxResumeRunes))

	e.logger.Debug("resume extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("resume extraction failed, using fallback profile", zap.Error(err))
		return FallbackProfile(), nil
	}

	e.logger.Debug("resume extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	profile, err := parseProfile(raw)
	if err != nil {
		e.logger.Warn("resume extraction response rejected, using fallback profile",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
		)
		return FallbackProfile(), nil
	}

	return profile, nil
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract the candidate profile as JSON.\n\nRESUME TEXT:\n{{RESUME_TEXT}}"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

func parseProfile(raw string) (*Profile, error) {
	cleaned := ai.ExtractJSON(raw)
	if err := ai.ValidateJSON(profileSchema, cleaned); err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	profile.CandidateName = strings.TrimSpace(profile.CandidateName)
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Phone = strings.TrimSpace(profile.Phone)
	profile.Summary = strings.TrimSpace(profile.Summary)
	profile.Skills = cleanSkills(profile.Skills)
	if profile.ExperienceYears < 0 {
		profile.ExperienceYears = 0
	}

	return &profile, nil
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return skills.Dedupe(out)
}
