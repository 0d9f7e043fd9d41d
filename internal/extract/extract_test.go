package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCompleter struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtract(t *testing.T) {
	stub := &stubCompleter{response: "```json\n" + `{
		"candidate_name": " Ada Lovelace ",
		"email": "ada@example.com",
		"phone": null,
		"skills": ["Python", " ", "Django", "Python"],
		"experience_years": "7",
		"summary": "Engineer."
	}` + "\n```"}

	e := NewExtractor(stub, zap.NewNop(), 0)
	profile, err := e.Extract(context.Background(), "Ada Lovelace\nPython, Django")
	require.NoError(t, err)

	assert.Equal(t, &Profile{
		CandidateName:   "Ada Lovelace",
		Email:           "ada@example.com",
		Skills:          []string{"Python", "Django"},
		ExperienceYears: 7,
		Summary:         "Engineer.",
	}, profile)
	assert.Contains(t, stub.lastPrompt, "RESUME TEXT:\nAda Lovelace\nPython, Django")
	assert.NotContains(t, stub.lastPrompt, "{{RESUME_TEXT}}")
}

func TestExtractTruncatesResume(t *testing.T) {
	stub := &stubCompleter{response: `{"skills": []}`}
	e := NewExtractor(stub, nil, 0)

	_, err := e.Extract(context.Background(), strings.Repeat("é", MaxResumeRunes+500))
	require.NoError(t, err)

	assert.Equal(t, MaxResumeRunes, strings.Count(stub.lastPrompt, "é"))
	assert.True(t, utf8.ValidString(stub.lastPrompt))
}

func TestExtractFallbacks(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
		log  string
	}{
		{name: "invalid json", stub: &stubCompleter{response: "I cannot help with that"}, log: "resume extraction response rejected, using fallback profile"},
		{name: "schema violation", stub: &stubCompleter{response: `{"skills": "python"}`}, log: "resume extraction response rejected, using fallback profile"},
		{name: "bad years", stub: &stubCompleter{response: `{"experience_years": "many"}`}, log: "resume extraction response rejected, using fallback profile"},
		{name: "provider error", stub: &stubCompleter{err: errors.New("quota")}, log: "resume extraction failed, using fallback profile"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			e := NewExtractor(tc.stub, zap.New(core), 0)

			profile, err := e.Extract(context.Background(), "some resume")
			require.NoError(t, err)
			assert.Equal(t, FallbackProfile(), profile)
			assert.Equal(t, FallbackSummary, profile.Summary)
			assert.NotNil(t, profile.Skills)
			assert.Zero(t, profile.ExperienceYears)
			assert.Equal(t, 1, logs.FilterMessage(tc.log).Len())
		})
	}
}

func TestExtractEmptyResume(t *testing.T) {
	stub := &stubCompleter{}
	e := NewExtractor(stub, nil, 0)

	_, err := e.Extract(context.Background(), " \n ")
	require.ErrorIs(t, err, ErrEmptyResume)
	assert.Zero(t, stub.calls)
}

func TestExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExtractor(&stubCompleter{err: context.Canceled}, nil, 0)
	_, err := e.Extract(ctx, "resume")
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanSkills(t *testing.T) {
	text := "Senior engineer: JavaScript, React.js and Core Java. Some C++ and SQL; no rust."
	got := ScanSkills(text, []string{"Java", "javascript", "c++", "c", "sql", "nosql", "Rust", "go", "react"})

	assert.Equal(t, []string{"c++", "java", "javascript", "react", "rust", "sql"}, got)
	assert.Empty(t, ScanSkills("", []string{"go"}))
}
