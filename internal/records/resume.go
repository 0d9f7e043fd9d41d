// Package records holds the job and resume records analyses are run on.
package records

import (
	"strings"

	"github.com/google/uuid"
)

// Resume is a candidate document with its extracted skills.
type Resume struct {
	ID              string   `json:"id"`
	CandidateName   string   `json:"candidate_name,omitempty"`
	Email           string   `json:"email,omitempty"`
	RawText         string   `json:"-"`
	ExtractedSkills []string `json:"extracted_skills"`
}

// NewResume wraps raw text into a Resume with a fresh ID.
func NewResume(rawText string) *Resume {
	return &Resume{
		ID:              uuid.NewString(),
		RawText:         rawText,
		ExtractedSkills: []string{},
	}
}

// Skills returns the extracted skills lower-cased, trimmed and without empties.
func (r *Resume) Skills() []string {
	out := make([]string, 0, len(r.ExtractedSkills))
	for _, s := range r.ExtractedSkills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
