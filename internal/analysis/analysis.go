// Package analysis runs a resume through the ordered analysis stages and
// collects everything they produce into a Result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/courses"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/detector"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/extract"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/interview"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/matcher"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/records"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/scoring"
	"go.uber.org/zap"
)

// Stage is a single named step of an analysis run.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, st *State) (Step, error)
}

// ProfileExtractor turns resume text into a structured profile.
type ProfileExtractor interface {
	Extract(ctx context.Context, rawText string) (*extract.Profile, error)
}

// SkillDetector finds semantic evidence of skills.
type SkillDetector interface {
	Detect(ctx context.Context, text string, skills map[string][]string) (map[string]detector.SkillMatchResult, error)
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// CourseRecommender maps missing skills to courses.
type CourseRecommender interface {
	Recommend(missing []string) []courses.Recommendation
}

// QuestionGenerator prepares interview questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, skills []string, role string, experienceYears int) ([]interview.Question, error)
}

// Saver persists a finished result.
type Saver interface {
	SaveAnalysis(ctx context.Context, r *Result) error
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Logger      *zap.Logger
	Extractor   ProfileExtractor
	Detector    SkillDetector
	Courses     CourseRecommender
	Interviewer QuestionGenerator
	Saver       Saver
}

// State is what stages read and write during one run.
type State struct {
	Job    *records.Job
	Resume *records.Resume
	Result *Result
}

// Step describes the outcome of executing a stage. A Warning is recorded
// on the result and does not stop the run.
type Step struct {
	Processed int
	Warning   error
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// Result is the immutable outcome of analysing one resume against one job.
type Result struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	ResumeID        string    `json:"resume_id"`
	CandidateName   string    `json:"candidate_name,omitempty"`
	Email           string    `json:"email,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	CandidateSkills []string  `json:"candidate_skills"`
	CreatedAt       time.Time `json:"created_at"`

	Matched         []string              `json:"matched"`
	Missing         []string              `json:"missing"`
	CoveragePercent float64               `json:"coverage_percent"`
	Band            scoring.Band          `json:"band"`
	Breakdown       []matcher.SkillStatus `json:"breakdown"`

	PerSkillEvidence   map[string][]string                  `json:"per_skill_evidence,omitempty"`
	Detections         map[string]detector.SkillMatchResult `json:"detections,omitempty"`
	DetectionSummary   *scoring.DetectionSummary            `json:"detection_summary,omitempty"`
	DocumentSimilarity *float64                             `json:"document_similarity,omitempty"`

	Courses         []courses.Recommendation `json:"courses"`
	ImprovementPlan string                   `json:"improvement_plan"`
	Questions       []interview.Question     `json:"questions,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Score returns the rounded coverage and band.
func (r *Result) Score() scoring.Score {
	return scoring.Score{CoveragePercent: r.CoveragePercent, Band: r.Band}
}

// statusProvider is implemented by stages that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run validates and executes the enabled stages in order.
func Run(ctx context.Context, deps Deps, stages []Stage, job *records.Job, resume *records.Resume) (*Result, error) {
	if job == nil {
		return nil, errors.New("job is required")
	}
	if resume == nil {
		return nil, errors.New("resume is required")
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(deps); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	st := &State{
		Job:    job,
		Resume: resume,
		Result: &Result{
			ID:              uuid.NewString(),
			JobID:           job.ID,
			JobTitle:        job.Title,
			ResumeID:        resume.ID,
			CandidateSkills: []string{},
			Matched:         []string{},
			Missing:         []string{},
			Courses:         []courses.Recommendation{},
			CreatedAt:       time.Now().UTC(),
		},
	}

	log := logger.WithFields(deps.Logger, logger.AnalysisFields(st.Result.ID, job.Title, resume.CandidateName)...)
	deps.Logger = log

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Info("stage disabled", zap.String("name", stage.Name()))
			continue
		}

		info, err := stage.Apply(ctx, deps, st)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		fields := []zap.Field{
			zap.String("name", stage.Name()),
			zap.Int("processed", info.Processed),
		}
		if info.Warning != nil {
			st.Result.Warnings = append(st.Result.Warnings, fmt.Sprintf("%s: %v", stage.Name(), info.Warning))
			log.Warn("analysis stage degraded", append(fields, zap.Error(info.Warning))...)
			continue
		}
		log.Info("analysis stage", fields...)
	}

	return st.Result, nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}
