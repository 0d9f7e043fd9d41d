// Package detector locates semantic evidence of skills in resume sentences.
package detector

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/embedding"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

const (
	DefaultThreshold   = 0.5
	EvidenceLimit      = 3
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second
)

// ErrSentenceEmbedding marks a run where the resume sentences could not be
// embedded. Results are still returned, based on keywords only.
var ErrSentenceEmbedding = errors.New("embed resume sentences")

// SkillMatchResult is the outcome for one skill.
type SkillMatchResult struct {
	Skill    string   `json:"skill"`
	Present  bool     `json:"present"`
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`
	Err      string   `json:"error,omitempty"`
}

// Segmenter splits text into sentences.
type Segmenter interface {
	Segment(text string) []string
}

// Options tune detection. Zero values select the defaults.
type Options struct {
	Threshold     float64
	EvidenceLimit int
	Concurrency   int
	Timeout       time.Duration
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.EvidenceLimit <= 0 {
		o.EvidenceLimit = EvidenceLimit
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// SentenceIndex holds the sentences of one resume and their embeddings.
type SentenceIndex struct {
	key       [sha256.Size]byte
	Sentences []string
	Vectors   [][]float32
}

// Detector compares skill keyword embeddings with resume sentence embeddings.
// It is safe for concurrent use.
type Detector struct {
	embedder  embedding.Embedder
	segmenter Segmenter
	opts      Options
	logger    *zap.Logger

	mu   sync.Mutex
	last *SentenceIndex
}

// New creates a Detector. The embedder and segmenter are required.
func New(emb embedding.Embedder, seg Segmenter, opts Options, log *zap.Logger) (*Detector, error) {
	if emb == nil {
		return nil, errors.New("embedder is required")
	}
	if seg == nil {
		return nil, errors.New("segmenter is required")
	}
	if opts.Threshold > 1 {
		return nil, fmt.Errorf("threshold must be within (0, 1], got %v", opts.Threshold)
	}

	return &Detector{
		embedder:  emb,
		segmenter: seg,
		opts:      opts.withDefaults(),
		logger:    logger.OrNop(log),
	}, nil
}

// Options returns the effective options.
func (d *Detector) Options() Options {
	return d.opts
}

// Index segments text and embeds every sentence. The last index is kept
// and returned again for the same text.
func (d *Detector) Index(ctx context.Context, text string) (*SentenceIndex, error) {
	key := sha256.Sum256([]byte(text))

	d.mu.Lock()
	if d.last != nil && d.last.key == key {
		idx := d.last
		d.mu.Unlock()
		return idx, nil
	}
	d.mu.Unlock()

	sentences := d.segmenter.Segment(text)
	vectors := make([][]float32, len(sentences))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)
	for i, sentence := range sentences {
		g.Go(func() error {
			vec, err := d.embed(gctx, sentence)
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &SentenceIndex{key: key, Sentences: sentences, Vectors: vectors}

	d.mu.Lock()
	d.last = idx
	d.mu.Unlock()

	return idx, nil
}

// Detect reports, for every skill, whether the resume shows it and which
// sentences support it. skills maps a skill name to its keywords.
//
// A skill is present when a keyword occurs in the text (case-insensitive)
// or a sentence reaches the similarity threshold. A failure to embed one
// skill only affects that skill. A failure to embed the sentences degrades
// every skill to keyword presence and is returned wrapped in
// ErrSentenceEmbedding together with the results.
func (d *Detector) Detect(ctx context.Context, text string, skills map[string][]string) (map[string]SkillMatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	folded := cases.Fold().String(text)
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	idx, indexErr := d.Index(ctx, text)
	if indexErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("skill detection: %w", ctxErr)
		}
		d.logger.Error("sentence embedding failed, using keywords only", zap.Error(indexErr))
		indexErr = fmt.Errorf("%w: %w", ErrSentenceEmbedding, indexErr)
	}

	results := make(map[string]SkillMatchResult, len(skills))
	for _, name := range names {
		keywords := cleanKeywords(skills[name])
		res := SkillMatchResult{Skill: name, Evidence: []string{}}

		if len(keywords) == 0 {
			results[name] = res
			continue
		}

		res.Present = containsAny(folded, keywords)
		if idx == nil || len(idx.Sentences) == 0 {
			results[name] = res
			continue
		}

		vec, err := d.embed(ctx, strings.Join(keywords, " "))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("skill detection: %w", ctxErr)
			}
			d.logger.Error("skill embedding failed", zap.String("skill", name), zap.Error(err))
			results[name] = SkillMatchResult{Skill: name, Evidence: []string{}, Err: err.Error()}
			continue
		}

		d.score(&res, vec, idx)
		results[name] = res

		d.logger.Debug("skill detected",
			zap.String("skill", name),
			zap.Bool("present", res.Present),
			zap.Float64("score", res.Score),
			zap.Int("evidence", len(res.Evidence)),
		)
	}

	return results, indexErr
}

func (d *Detector) score(res *SkillMatchResult, vec []float32, idx *SentenceIndex) {
	best := 0.0
	for i, sentenceVec := range idx.Vectors {
		sim := embedding.Cosine(vec, sentenceVec)
		if i == 0 || sim > best {
			best = sim
		}
		if sim >= d.opts.Threshold {
			res.Present = true
			if len(res.Evidence) < d.opts.EvidenceLimit {
				res.Evidence = append(res.Evidence, idx.Sentences[i])
			}
		}
	}
	res.Score = clamp(best)
}

// Similarity is the cosine similarity of the embeddings of two documents.
// It is bounded by the same timeout as Detect.
func (d *Detector) Similarity(ctx context.Context, a, b string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	va, err := d.embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed first document: %w", err)
	}
	vb, err := d.embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed second document: %w", err)
	}
	return embedding.Cosine(va, vb), nil
}

// embed returns once ctx ends even if the embedder does not honour it.
// The abandoned call finishes in the background.
func (d *Detector) embed(ctx context.Context, text string) ([]float32, error) {
	type reply struct {
		vec []float32
		err error
	}
	done := make(chan reply, 1)
	go func() {
		vec, err := d.embedder.Embed(ctx, text)
		done <- reply{vec: vec, err: err}
	}()

	select {
	case r := <-done:
		return r.vec, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func cleanKeywords(keywords []string) []string {
	caser := cases.Fold()
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out = append(out, caser.String(k))
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
