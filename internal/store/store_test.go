package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/analysis"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/records"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/scoring"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "hirelens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func result(id string, coverage float64, at time.Time) *analysis.Result {
	return &analysis.Result{
		ID:               id,
		JobID:            "job-1",
		JobTitle:         "Backend Engineer",
		ResumeID:         "resume-" + id,
		CandidateName:    "Candidate " + id,
		Matched:          []string{"python"},
		Missing:          []string{"java"},
		CoveragePercent:  coverage,
		Band:             scoring.BandFor(coverage),
		PerSkillEvidence: map[string][]string{"python": {"Python developer"}},
		CreatedAt:        at,
	}
}

func TestJobs(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	job := &records.Job{ID: "job-1", Title: "Backend Engineer", RequiredSkills: "Python, Java", MinimumExperience: 3}
	require.NoError(t, s.SaveJob(ctx, job))

	got, err := s.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, job, got)

	job.RequiredSkills = "Python, Java, SQL"
	require.NoError(t, s.SaveJob(ctx, job))
	got, err = s.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Python, Java, SQL", got.RequiredSkills)

	_, err = s.GetJob(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, s.SaveJob(ctx, &records.Job{Title: "no id"}))
}

func TestAnalyses(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveJob(ctx, &records.Job{ID: "job-1", Title: "Backend Engineer", RequiredSkills: "Python, Java"}))

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAnalysis(ctx, result("a", 50, base)))
	require.NoError(t, s.SaveAnalysis(ctx, result("b", 100, base)))
	require.NoError(t, s.SaveAnalysis(ctx, result("c", 50, base.Add(time.Hour))))

	got, err := s.GetAnalysis(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, result("a", 50, base), got)

	list, err := s.ListAnalysesByJob(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

	empty, err := s.ListAnalysesByJob(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.GetAnalysis(ctx, "zzz")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestAnalysesAreInsertOnly(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveJob(ctx, &records.Job{ID: "job-1", Title: "Backend Engineer", RequiredSkills: "Python"}))

	r := result("a", 50, time.Now().UTC())
	require.NoError(t, s.SaveAnalysis(ctx, r))
	require.Error(t, s.SaveAnalysis(ctx, r), "duplicate id must be rejected")

	_, err := s.db.ExecContext(ctx, `UPDATE analyses SET band = 'HIGH' WHERE id = 'a'`)
	require.ErrorContains(t, err, "immutable")
}

func TestSaveAnalysisRequiresKnownJob(t *testing.T) {
	s := openStore(t)
	err := s.SaveAnalysis(context.Background(), result("a", 10, time.Now()))
	require.Error(t, err)
}
