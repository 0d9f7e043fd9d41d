package segment

import (
	"testing"

	"github.com/neurosnap/sentences"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type splitOnPeriod struct{}

func (splitOnPeriod) Tokenize(text string) []*sentences.Sentence {
	var out []*sentences.Sentence
	start := 0
	for i, r := range text {
		if r == '.' {
			out = append(out, &sentences.Sentence{Text: text[start : i+1]})
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, &sentences.Sentence{Text: text[start:]})
	}
	return out
}

func TestSegmentWithTokenizer(t *testing.T) {
	s := &Segmenter{tokenizer: splitOnPeriod{}, logger: zap.NewNop()}

	text := "Built APIs in Go. Led a team of five.\n\n• Kubernetes operator\r\n- Terraform modules\n   \n* "
	got := s.Segment(text)

	assert.Equal(t, []string{
		"Built APIs in Go.",
		"Led a team of five.",
		"Kubernetes operator",
		"Terraform modules",
	}, got)
}

func TestSegmentFallbackOneSentencePerLine(t *testing.T) {
	s := &Segmenter{}
	got := s.Segment("Python developer. Django expert.\n▪ PostgreSQL")
	assert.Equal(t, []string{"Python developer. Django expert.", "PostgreSQL"}, got)
}

func TestSegmentEmpty(t *testing.T) {
	s := New(zap.NewNop())
	assert.Empty(t, s.Segment(""))
	assert.Empty(t, s.Segment(" \n\t\n "))
	assert.NotNil(t, s.Segment(""))
}

func TestSegmentEnglishTokenizer(t *testing.T) {
	s := New(nil)
	got := s.Segment("I have 5 years of experience with Go. I also know Python.\nDocker, Kubernetes")

	assert.Contains(t, got, "Docker, Kubernetes")
	assert.GreaterOrEqual(t, len(got), 2)
	for _, sentence := range got {
		assert.NotEmpty(t, sentence)
	}
}
