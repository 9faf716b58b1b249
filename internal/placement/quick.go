package placement

import (
	"fmt"
	"math"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/profile"
)

// QuickInput is a reduced placement request: a handful of 0-100 quick
// check scores, or a self-reported band when no scores exist. Nil fields
// were not supplied.
type QuickInput struct {
	Decoding        *float64
	WordRecognition *float64
	Fluency         *float64
	Comprehension   *float64
	SelfReport      *level.Band

	Group    level.LearnerGroup
	Previous *level.Level
}

func (q QuickInput) score(d profile.Domain) *float64 {
	switch d {
	case profile.Decoding:
		return q.Decoding
	case profile.WordRecognition:
		return q.WordRecognition
	case profile.Fluency:
		return q.Fluency
	default:
		return q.Comprehension
	}
}

// ScoreToLevel maps a single 0-100 score to the highest level whose mean
// decoding, word recognition and comprehension threshold it meets.
func ScoreToLevel(score float64) level.Level {
	if math.IsNaN(score) {
		return level.First
	}
	for l := level.Last; l > level.First; l-- {
		t := l.Config().Thresholds
		if score >= (t.DecodingMin+t.WordRecognitionMin+t.ComprehensionMin)/3 {
			return l
		}
	}
	return level.First
}

// QuickPlace maps reduced input straight to a level. Supplied scores are
// averaged and run through ScoreToLevel; without scores the self-reported
// band is mapped through the legacy scale; with neither the learner starts
// at the first level. Confidence is always low because evidence
// sufficiency cannot be established.
func QuickPlace(q QuickInput) Result {
	group := normalizeGroup(q.Group)

	var sum float64
	var supplied []profile.Domain
	for _, d := range profile.AllDomains() {
		if s := q.score(d); s != nil {
			sum += clampScore(*s)
			supplied = append(supplied, d)
		}
	}

	var l level.Level
	var reason string
	switch {
	case len(supplied) > 0:
		l = ScoreToLevel(sum / float64(len(supplied)))
		reason = fmt.Sprintf("is estimated from %d quick-check %s.", len(supplied), plural(len(supplied), "score", "scores"))
	case q.SelfReport != nil:
		l = level.FromLegacyBand(*q.SelfReport)
		reason = fmt.Sprintf("is estimated from a self-reported %s reading band.", *q.SelfReport)
	default:
		l = level.First
		reason = "starts at the beginning of the scale because no quick-check evidence was supplied."
	}

	skills := SkillLevels{Decoding: l, WordRecognition: l, Fluency: l, Comprehension: l}
	for _, d := range supplied {
		skills.set(d, ScoreToLevel(clampScore(*q.score(d))))
	}
	limiting, strongest := extremes(skills)

	return Result{
		Level:            l,
		Group:            group,
		Confidence:       profile.Low,
		Method:           Quick,
		SkillLevels:      skills,
		LimitingSkills:   limiting,
		StrongestSkills:  strongest,
		RecommendedFocus: recommendedFocus(skills, group),
		LevelChange:      change(l, q.Previous),
		Explanation: explain("Quick placement", l, group, reason) +
			" Complete a full assessment for a more reliable placement.",
		Disclaimer: level.PlacementDisclaimer,
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 100)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
