// Package interview generates interview questions and grades free-text answers.
package interview

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/ai"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/utils"
	"go.uber.org/zap"
)

const (
	DefaultQuestionCount = 5

	DefaultText       = "Default Question"
	DefaultDifficulty = "Medium"
	DefaultTopic      = "General"

	EvaluationFailed = "AI Evaluation Failed"

	defaultMaxLogLength = 200
)

//go:embed questions.md
var questionsTemplate string

//go:embed grade.md
var gradeTemplate string

type Question struct {
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// Evaluation is the grade of one answer. Score is within [0, 100].
type Evaluation struct {
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
	IsCorrect bool   `json:"is_correct"`
}

// FailedEvaluation is returned whenever an answer cannot be graded.
func FailedEvaluation() Evaluation {
	return Evaluation{Score: 0, Feedback: EvaluationFailed, IsCorrect: false}
}

type Interviewer struct {
	completer ai.Completer
	count     int
	logger    *zap.Logger
	maxLogLen int
}

// NewInterviewer creates an Interviewer asking for count questions;
// non-positive count selects DefaultQuestionCount.
func NewInterviewer(completer ai.Completer, count int, log *zap.Logger) *Interviewer {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	return &Interviewer{completer: completer, count: count, logger: logger.OrNop(log), maxLogLen: defaultMaxLogLength}
}

// GenerateQuestions asks for interview questions tailored to the candidate.
// An answer that cannot be parsed yields an empty slice; provider failures
// are returned.
func (i *Interviewer) GenerateQuestions(ctx context.Context, skills []string, role string, experienceYears int) ([]Question, error) {
	if i.completer == nil {
		return nil, errors.New("interviewer has no completer")
	}

	prompt := render(questionsTemplate, map[string]string{
		"COUNT":      strconv.Itoa(i.count),
		"ROLE":       strings.TrimSpace(role),
		"SKILLS":     strings.Join(skills, ", "),
		"EXPERIENCE": strconv.Itoa(experienceYears),
	})

	raw, err := i.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		i.logger.Warn("interview questions response rejected",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
		)
		return []Question{}, nil
	}

	if len(questions) > i.count {
		questions = questions[:i.count]
	}

	i.logger.Debug("interview questions generated", zap.Int("count", len(questions)))
	return questions, nil
}

// EvaluateAnswer grades a free-text answer. Any failure yields FailedEvaluation.
func (i *Interviewer) EvaluateAnswer(ctx context.Context, question, answer string) Evaluation {
	if i.completer == nil {
		return FailedEvaluation()
	}

	prompt := render(gradeTemplate, map[string]string{
		"QUESTION": strings.TrimSpace(question),
		"ANSWER":   strings.TrimSpace(answer),
	})

	raw, err := i.completer.Complete(ctx, prompt)
	if err != nil {
		i.logger.Warn("answer evaluation failed", zap.Error(err))
		return FailedEvaluation()
	}

	eval, err := parseEvaluation(raw)
	if err != nil {
		i.logger.Warn("answer evaluation response rejected",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
		)
		return FailedEvaluation()
	}

	return eval
}

func render(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

func parseQuestions(raw string) ([]Question, error) {
	cleaned := ai.ExtractJSON(raw)
	if err := ai.ValidateJSON(questionsSchema, cleaned); err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["questions"].([]any)
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		questions = append(questions, Question{
			Text:       withDefault(ai.CoerceString(fields["text"]), DefaultText),
			Difficulty: withDefault(ai.CoerceString(fields["difficulty"]), DefaultDifficulty),
			Topic:      withDefault(ai.CoerceString(fields["topic"]), DefaultTopic),
		})
	}
	return questions, nil
}

func parseEvaluation(raw string) (Evaluation, error) {
	cleaned := ai.ExtractJSON(raw)
	if err := ai.ValidateJSON(evaluationSchema, cleaned); err != nil {
		return Evaluation{}, err
	}

	data, err := ai.DecodeObject(cleaned)
	if err != nil {
		return Evaluation{}, err
	}

	score := ai.CoerceFloat(data["score"])
	if math.IsNaN(score) {
		return Evaluation{}, fmt.Errorf("score %v is not a number", data["score"])
	}

	return Evaluation{
		Score:     int(math.Round(math.Max(0, math.Min(100, score)))),
		Feedback:  ai.CoerceString(data["feedback"]),
		IsCorrect: ai.CoerceBool(data["is_correct"]),
	}, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
