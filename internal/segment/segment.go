// Package segment splits resume text into sentences.
package segment

import (
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"go.uber.org/zap"
)

const bulletGlyphs = "•-*·▪–◦"

type sentenceTokenizer interface {
	Tokenize(text string) []*sentences.Sentence
}

// Segmenter splits text line by line, then each line with a punkt
// sentence tokenizer. Without a tokenizer every non-empty line is one sentence.
type Segmenter struct {
	tokenizer sentenceTokenizer
	logger    *zap.Logger
}

// New builds a Segmenter around the English punkt model. If the model
// cannot be loaded the line fallback is used and a warning is logged.
func New(log *zap.Logger) *Segmenter {
	log = logger.OrNop(log)

	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("sentence tokenizer unavailable, splitting by line", zap.Error(err))
		return &Segmenter{logger: log}
	}

	return &Segmenter{tokenizer: tokenizer, logger: log}
}

// Segment returns the sentences of text in order. Empty text gives an
// empty slice.
func (s *Segmenter) Segment(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	result := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = cleanSentence(line)
		if line == "" {
			continue
		}

		if s == nil || s.tokenizer == nil {
			result = append(result, line)
			continue
		}

		parts := s.tokenizer.Tokenize(line)
		if len(parts) == 0 {
			result = append(result, line)
			continue
		}
		for _, part := range parts {
			if part == nil {
				continue
			}
			if sentence := cleanSentence(part.Text); sentence != "" {
				result = append(result, sentence)
			}
		}
	}

	return result
}

func cleanSentence(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := strings.TrimLeft(s, bulletGlyphs)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
