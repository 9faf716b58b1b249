// Package intake decodes JSON assessment and quick-check submissions into
// the inputs of the scoring and placement packages. Every document is
// validated against an embedded JSON Schema before it is decoded.
package intake

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/placement"
	"github.com/neurobreath/placement/internal/profile"
)

// Context is the learner information shared by both submission kinds.
type Context struct {
	LearnerID     string `json:"learner_id,omitempty"`
	Age           int    `json:"age,omitempty"`
	Role          string `json:"role,omitempty"`
	Group         string `json:"group,omitempty"`
	PreviousLevel string `json:"previous_level,omitempty"`
}

// Learner returns the group-resolution context.
func (c Context) Learner() placement.Learner {
	return placement.Learner{Age: c.Age, Role: c.Role, Group: c.Group}
}

// ResolveGroup picks the learner group from the context.
func (c Context) ResolveGroup() level.LearnerGroup {
	return placement.ResolveGroup(c.Learner())
}

// Previous returns the previous level, or nil if none was given.
func (c Context) Previous() *level.Level {
	if c.PreviousLevel == "" {
		return nil
	}
	l, err := level.Parse(c.PreviousLevel)
	if err != nil {
		return nil
	}
	return &l
}

// Submission is a full assessment submission.
type Submission struct {
	Context
	Decoding        *profile.Counts  `json:"decoding,omitempty"`
	WordRecognition *profile.Counts  `json:"word_recognition,omitempty"`
	ORF             *profile.Reading `json:"orf,omitempty"`
	Comprehension   *profile.Counts  `json:"comprehension,omitempty"`
}

// Assessment converts the submission into scoring input.
func (s Submission) Assessment() profile.Assessment {
	return profile.Assessment{
		Decoding:        s.Decoding,
		WordRecognition: s.WordRecognition,
		Reading:         s.ORF,
		Comprehension:   s.Comprehension,
	}
}

// PlacementInput builds a full placement request from a scored profile.
func (s Submission) PlacementInput(p profile.Profile) placement.Input {
	return placement.Input{Profile: p, Group: s.ResolveGroup(), Previous: s.Previous()}
}

// QuickScores are optional 0-100 quick-check scores.
type QuickScores struct {
	Decoding        *float64 `json:"decoding,omitempty"`
	WordRecognition *float64 `json:"word_recognition,omitempty"`
	Fluency         *float64 `json:"fluency,omitempty"`
	Comprehension   *float64 `json:"comprehension,omitempty"`
}

// QuickCheck is a reduced placement submission.
type QuickCheck struct {
	Context
	Scores     QuickScores `json:"scores"`
	SelfReport string      `json:"self_report,omitempty"`
}

// Input converts the quick check into a quick placement request.
func (q QuickCheck) Input() placement.QuickInput {
	in := placement.QuickInput{
		Decoding:        q.Scores.Decoding,
		WordRecognition: q.Scores.WordRecognition,
		Fluency:         q.Scores.Fluency,
		Comprehension:   q.Scores.Comprehension,
		Group:           q.ResolveGroup(),
		Previous:        q.Previous(),
	}
	if b, err := level.ParseBand(q.SelfReport); err == nil {
		in.SelfReport = &b
	}
	return in
}

// DecodeSubmission reads and validates an assessment submission.
func DecodeSubmission(r io.Reader) (*Submission, error) {
	var s Submission
	if err := decode(r, AssessmentSchema, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeQuickCheck reads and validates a quick-check submission.
func DecodeQuickCheck(r io.Reader) (*QuickCheck, error) {
	var q QuickCheck
	if err := decode(r, QuickSchema, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func decode(r io.Reader, schema string, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s submission: %w", schema, err)
	}
	if err := validate(schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Schema: schema, Err: err}
	}
	return nil
}
