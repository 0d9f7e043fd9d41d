package embedding

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// MaxTokens is the longest token sequence fed to an encoder.
const MaxTokens = 256

// Tokenizer case-folds text and splits it into word tokens.
type Tokenizer struct {
	MaxTokens int
}

// Tokenize returns at most MaxTokens tokens. Letters, digits and the
// characters '+', '#' and '.' inside a word are kept so that skills such
// as "c++", "c#" and "node.js" survive as single tokens.
func (t Tokenizer) Tokenize(text string) []string {
	// cases.Caser keeps state and is not safe for concurrent use.
	folded := cases.Fold().String(text)

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.')
	})

	limit := t.MaxTokens
	if limit <= 0 {
		limit = MaxTokens
	}

	tokens := make([]string, 0, min(len(fields), limit))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
		if len(tokens) == limit {
			break
		}
	}
	return tokens
}

// Clip keeps the first limit whitespace-separated words of text, leaving
// their spelling and spacing untouched. Remote encoders get the same word
// budget as the local tokenizer this way.
func Clip(text string, limit int) string {
	if limit <= 0 {
		limit = MaxTokens
	}
	words, inWord := 0, false
	for i, r := range text {
		if !unicode.IsSpace(r) {
			inWord = true
			continue
		}
		if inWord {
			words++
			inWord = false
			if words == limit {
				return text[:i]
			}
		}
	}
	return text
}
