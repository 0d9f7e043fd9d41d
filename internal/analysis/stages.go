package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/courses"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/detector"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/extract"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/matcher"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/scoring"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
)

const (
	StageExtract   = "extract"
	StageMatch     = "match"
	StageDetect    = "detect"
	StageRecommend = "recommend"
	StageQuestions = "questions"
	StageSave      = "save"
)

// DefaultStages returns every stage in execution order, all enabled.
func DefaultStages() []Stage {
	return []Stage{
		NewExtract(),
		NewMatch(),
		NewDetect(),
		NewRecommend(),
		NewQuestions(),
		NewSave(),
	}
}

// toggle carries the enabled flag shared by all stages.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type extractStage struct {
	toggle
}

// NewExtract creates the stage that fills candidate data and skills from
// the resume text. Without an extractor, or when extraction yields no
// skills, the job requirements are scanned for directly in the text.
func NewExtract() Stage {
	return &extractStage{}
}

func (s *extractStage) Name() string { return StageExtract }

func (s *extractStage) Validate(Deps) error { return nil }

func (s *extractStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	res, resume := st.Result, st.Resume

	if len(resume.Skills()) > 0 {
		res.CandidateSkills = resume.Skills()
		return Step{Processed: len(res.CandidateSkills)}, nil
	}

	var warning error
	if deps.Extractor != nil {
		profile, err := deps.Extractor.Extract(ctx, resume.RawText)
		if err != nil {
			warning = err
		} else {
			if profile.Fallback {
				warning = errors.New("resume could not be parsed, skills scanned from text")
			}
			applyProfile(st, profile)
		}
	}

	if len(resume.Skills()) == 0 {
		resume.ExtractedSkills = extract.ScanSkills(resume.RawText, st.Job.Requirements())
	}

	res.CandidateSkills = resume.Skills()
	return Step{Processed: len(res.CandidateSkills), Warning: warning}, nil
}

func applyProfile(st *State, p *extract.Profile) {
	if st.Resume.CandidateName == "" {
		st.Resume.CandidateName = p.CandidateName
	}
	if st.Resume.Email == "" {
		st.Resume.Email = p.Email
	}
	st.Resume.ExtractedSkills = append([]string(nil), p.Skills...)

	st.Result.CandidateName = st.Resume.CandidateName
	st.Result.Email = st.Resume.Email
	st.Result.Summary = p.Summary
	st.Result.ExperienceYears = p.ExperienceYears
}

type matchStage struct {
	toggle
}

// NewMatch creates the stage that computes the canonical verdict and score.
func NewMatch() Stage {
	return &matchStage{}
}

func (s *matchStage) Name() string { return StageMatch }

func (s *matchStage) Validate(Deps) error { return nil }

func (s *matchStage) Apply(_ context.Context, _ Deps, st *State) (Step, error) {
	candidates := st.Resume.Skills()
	verdict := matcher.Match(st.Job.Requirements(), candidates)
	score := scoring.Aggregate(verdict)

	res := st.Result
	res.Matched = verdict.Matched
	res.Missing = verdict.Missing
	res.CoveragePercent = score.CoveragePercent
	res.Band = score.Band
	res.Breakdown = matcher.Breakdown(st.Job.DisplaySkills(), candidates)
	if res.CandidateName == "" {
		res.CandidateName = st.Resume.CandidateName
	}

	return Step{Processed: len(verdict.Matched) + len(verdict.Missing)}, nil
}

type detectStage struct {
	toggle
}

// NewDetect creates the stage that gathers semantic evidence per required skill.
func NewDetect() Stage {
	return &detectStage{}
}

func (s *detectStage) Name() string { return StageDetect }

func (s *detectStage) Validate(deps Deps) error {
	if deps.Detector == nil {
		return errors.New("skill detector is required when semantic detection is enabled")
	}
	return nil
}

func (s *detectStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	keywords := skills.KeywordSets(st.Job.Requirements())

	results, err := deps.Detector.Detect(ctx, st.Resume.RawText, keywords)
	if err != nil && !errors.Is(err, detector.ErrSentenceEmbedding) {
		return Step{Warning: err}, nil
	}

	res := st.Result
	res.Detections = results
	res.PerSkillEvidence = make(map[string][]string, len(results))
	for name, r := range results {
		if len(r.Evidence) > 0 {
			res.PerSkillEvidence[name] = r.Evidence
		}
	}
	summary := scoring.EvaluateDetections(results)
	res.DetectionSummary = &summary

	if err == nil {
		sim, simErr := deps.Detector.Similarity(ctx, st.Resume.RawText, st.Job.RequiredSkills)
		if simErr != nil {
			err = fmt.Errorf("document similarity: %w", simErr)
		} else {
			res.DocumentSimilarity = &sim
		}
	}

	return Step{Processed: len(results), Warning: err}, nil
}

type recommendStage struct {
	toggle
}

// NewRecommend creates the stage that maps missing skills to courses.
func NewRecommend() Stage {
	return &recommendStage{}
}

func (s *recommendStage) Name() string { return StageRecommend }

func (s *recommendStage) Validate(deps Deps) error {
	if deps.Courses == nil {
		return errors.New("course catalog is required")
	}
	return nil
}

func (s *recommendStage) Apply(_ context.Context, deps Deps, st *State) (Step, error) {
	recs := deps.Courses.Recommend(st.Result.Missing)
	st.Result.Courses = recs
	st.Result.ImprovementPlan = courses.ImprovementPlan(recs)
	return Step{Processed: len(recs)}, nil
}

type questionsStage struct {
	toggle
}

// NewQuestions creates the stage that prepares interview questions.
func NewQuestions() Stage {
	return &questionsStage{}
}

func (s *questionsStage) Name() string { return StageQuestions }

func (s *questionsStage) Validate(deps Deps) error {
	if deps.Interviewer == nil {
		return errors.New("interviewer is required when question generation is enabled")
	}
	return nil
}

func (s *questionsStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	res := st.Result
	questions, err := deps.Interviewer.GenerateQuestions(ctx, res.CandidateSkills, st.Job.Title, res.ExperienceYears)
	if err != nil {
		return Step{Warning: err}, nil
	}
	res.Questions = questions
	return Step{Processed: len(questions)}, nil
}

type saveStage struct {
	toggle
}

// NewSave creates the stage that persists the result.
func NewSave() Stage {
	return &saveStage{}
}

func (s *saveStage) Name() string { return StageSave }

func (s *saveStage) Validate(deps Deps) error {
	if deps.Saver == nil {
		return errors.New("store is required when saving is enabled")
	}
	return nil
}

func (s *saveStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	if err := deps.Saver.SaveAnalysis(ctx, st.Result); err != nil {
		return Step{}, fmt.Errorf("save analysis: %w", err)
	}
	return Step{Processed: 1}, nil
}

func (t *toggle) status(name string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason}
}

func (s *extractStage) Status() Status   { return s.status(s.Name()) }
func (s *matchStage) Status() Status     { return s.status(s.Name()) }
func (s *detectStage) Status() Status    { return s.status(s.Name()) }
func (s *recommendStage) Status() Status { return s.status(s.Name()) }
func (s *questionsStage) Status() Status { return s.status(s.Name()) }
func (s *saveStage) Status() Status      { return s.status(s.Name()) }
