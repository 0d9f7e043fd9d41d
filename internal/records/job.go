package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
	"go.yaml.in/yaml/v3"
)

// ErrJobNotFound is returned when a job lookup has no result.
var ErrJobNotFound = errors.New("job not found")

// jobNamespace scopes the deterministic IDs of jobs loaded without one.
var jobNamespace = uuid.MustParse("9b0c7f1e-52a4-4d59-9a0a-0d5f3c1e7b21")

type Jobs struct {
	Items []*Job
}

// Job is an opening with its comma-separated required skills.
type Job struct {
	ID                string `mapstructure:"id" json:"id" yaml:"id"`
	Title             string `mapstructure:"title" json:"title" yaml:"title"`
	RequiredSkills    string `mapstructure:"required_skills" json:"required_skills" yaml:"required_skills"`
	MinimumExperience int    `mapstructure:"minimum_experience" json:"minimum_experience" yaml:"minimum_experience"`
}

// Requirements returns the normalised required skills.
func (j *Job) Requirements() []skills.Requirement {
	return skills.ParseRequirements(j.RequiredSkills)
}

// DisplaySkills returns the required skills in their original spelling.
func (j *Job) DisplaySkills() []string {
	return skills.SplitDisplay(j.RequiredSkills)
}

// LoadJobs reads a job catalogue. Files ending in .json are decoded as
// JSON, everything else as YAML. The document is either a list of jobs or
// an object with a "jobs" list. required_skills may be a string or a list.
func LoadJobs(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file %q: %w", path, err)
	}

	var doc any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse jobs file %q: %w", path, err)
	}

	return DecodeJobs(doc)
}

// DecodeJobs converts a loosely typed document into Jobs.
func DecodeJobs(doc any) (*Jobs, error) {
	if m, ok := doc.(map[string]any); ok {
		doc = m["jobs"]
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, errors.New("jobs document must be a list or contain a jobs list")
	}

	var jobs []*Job
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       joinSkillList,
		WeaklyTypedInput: true,
		Result:           &jobs,
	})
	if err != nil {
		return nil, fmt.Errorf("create jobs decoder: %w", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	seen := make(map[string]struct{}, len(jobs))
	for i, job := range jobs {
		if job == nil {
			return nil, fmt.Errorf("job %d is empty", i)
		}
		job.Title = strings.TrimSpace(job.Title)
		if job.Title == "" {
			return nil, fmt.Errorf("job %d has no title", i)
		}
		if job.ID = strings.TrimSpace(job.ID); job.ID == "" {
			job.ID = uuid.NewSHA1(jobNamespace, []byte(job.Title)).String()
		}
		if _, dup := seen[job.ID]; dup {
			return nil, fmt.Errorf("duplicate job id %q", job.ID)
		}
		seen[job.ID] = struct{}{}
	}

	return &Jobs{Items: jobs}, nil
}

// joinSkillList lets required_skills be written as a list.
func joinSkillList(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}
	list, ok := data.([]any)
	if !ok {
		return data, nil
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	return strings.Join(parts, ", "), nil
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) Titles() []string {
	titles := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		titles = append(titles, job.Title)
	}
	return titles
}

// FindByTitle matches titles case-insensitively.
func (j *Jobs) FindByTitle(title string) (*Job, error) {
	title = strings.TrimSpace(title)
	for _, job := range j.Items {
		if strings.EqualFold(job.Title, title) {
			return job, nil
		}
	}
	return nil, fmt.Errorf("%w: title %q", ErrJobNotFound, title)
}

func (j *Jobs) FindByID(id string) (*Job, error) {
	for _, job := range j.Items {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, fmt.Errorf("%w: id %q", ErrJobNotFound, id)
}
