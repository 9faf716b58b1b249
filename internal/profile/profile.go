package profile

import (
	"fmt"
	"sort"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/orf"
)

// Counts is a correct/total tally for an accuracy-based domain.
type Counts struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Reading is a raw timed read-aloud, converted with orf.Calculate.
type Reading struct {
	TotalWords      int             `json:"total_words"`
	DurationSeconds float64         `json:"duration_seconds"`
	Errors          []orf.ErrorMark `json:"errors"`
}

// Assessment is one submission. Every section is optional; a nil section
// is zero evidence for its domain. When both Metrics and Reading are set,
// Metrics wins.
type Assessment struct {
	Decoding        *Counts      `json:"decoding,omitempty"`
	WordRecognition *Counts      `json:"word_recognition,omitempty"`
	Reading         *Reading     `json:"reading,omitempty"`
	Metrics         *orf.Metrics `json:"metrics,omitempty"`
	Comprehension   *Counts      `json:"comprehension,omitempty"`
}

// Profile is the multi-domain result of one assessment. A new profile is
// built for every submission; profiles are never updated in place.
type Profile struct {
	Decoding        SkillScore   `json:"decoding"`
	WordRecognition SkillScore   `json:"word_recognition"`
	Fluency         SkillScore   `json:"fluency"`
	Comprehension   SkillScore   `json:"comprehension"`
	ORF             *orf.Metrics `json:"orf,omitempty"`

	OverallBand level.Band `json:"overall_band"`
	Confidence  Confidence `json:"confidence"`

	Strengths      []string `json:"strengths"`
	Needs          []string `json:"needs"`
	SuggestedFocus string   `json:"suggested_focus"`
	Disclaimer     string   `json:"disclaimer"`
}

// Score returns the skill score for a domain.
func (p Profile) Score(d Domain) SkillScore {
	switch d {
	case Decoding:
		return p.Decoding
	case WordRecognition:
		return p.WordRecognition
	case Fluency:
		return p.Fluency
	case Comprehension:
		return p.Comprehension
	default:
		return SkillScore{}
	}
}

// Build scores an assessment with the default configuration.
func Build(a Assessment) Profile {
	return BuildWith(a, DefaultConfig())
}

// BuildWith scores an assessment using the given thresholds and weights.
func BuildWith(a Assessment, cfg Config) Profile {
	p := Profile{Disclaimer: TrainingDisclaimer}

	p.Decoding = countsScore(a.Decoding, cfg.minItems(Decoding))
	p.WordRecognition = countsScore(a.WordRecognition, cfg.minItems(WordRecognition))
	p.Comprehension = countsScore(a.Comprehension, cfg.minItems(Comprehension))

	switch {
	case a.Metrics != nil:
		m := *a.Metrics
		p.ORF = &m
	case a.Reading != nil:
		m := orf.Calculate(a.Reading.TotalWords, a.Reading.Errors, a.Reading.DurationSeconds)
		p.ORF = &m
	}
	if p.ORF != nil {
		p.Fluency = FluencyFromMetrics(*p.ORF, cfg.minItems(Fluency))
	} else {
		p.Fluency = AccuracyScore(0, 0, cfg.minItems(Fluency))
	}

	p.Confidence = confidenceOf(p)
	p.OverallBand = overallBand(p, cfg.weights())
	p.Strengths, p.Needs, p.SuggestedFocus = analyze(p)
	return p
}

func countsScore(c *Counts, minItems int) SkillScore {
	if c == nil {
		return AccuracyScore(0, 0, minItems)
	}
	return AccuracyScore(c.Correct, c.Total, minItems)
}

// ConfidenceFromSufficient maps the number of domains that met their
// evidence threshold to a confidence rating.
func ConfidenceFromSufficient(n int) Confidence {
	switch {
	case n >= 3:
		return High
	case n >= 2:
		return Medium
	default:
		return Low
	}
}

func confidenceOf(p Profile) Confidence {
	n := 0
	for _, d := range AllDomains() {
		if p.Score(d).Sufficient() {
			n++
		}
	}
	return ConfidenceFromSufficient(n)
}

// overallBand is the weighted mean of band ordinals, rounded half up.
// Weights are integer hundredths so exact halves are not subject to
// floating point drift.
func overallBand(p Profile, weights map[Domain]int) level.Band {
	sum := 0
	for _, d := range AllDomains() {
		sum += p.Score(d).Band.Ordinal() * weights[d]
	}
	return level.BandFromOrdinal((sum + 50) / 100)
}

type ranked struct {
	domain Domain
	score  SkillScore
}

// Ranked returns the domains ordered by score, highest first. Ties keep
// reporting order.
func (p Profile) Ranked() []Domain {
	rs := rank(p)
	out := make([]Domain, len(rs))
	for i, r := range rs {
		out[i] = r.domain
	}
	return out
}

func rank(p Profile) []ranked {
	rs := make([]ranked, 0, 4)
	for _, d := range AllDomains() {
		rs = append(rs, ranked{domain: d, score: p.Score(d)})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].score.Score > rs[j].score.Score
	})
	return rs
}

func analyze(p Profile) (strengths, needs []string, focus string) {
	rs := rank(p)
	strengths = []string{}
	needs = []string{}

	for _, r := range rs[:2] {
		if r.score.Band.AtLeast(level.Intermediate) {
			strengths = append(strengths, fmt.Sprintf("%s skills are at %s level", r.domain.Name(), r.score.Band))
		}
	}
	for _, r := range rs[len(rs)-2:] {
		if !r.score.Band.AtLeast(level.Intermediate) {
			needs = append(needs, fmt.Sprintf("%s could benefit from more practice", r.domain.Name()))
		}
	}

	focus = "Focus on " + rs[len(rs)-1].domain.FocusLabel()

	decodingStrong := p.Decoding.Band.AtLeast(level.Intermediate)
	comprehensionStrong := p.Comprehension.Band.AtLeast(level.Intermediate)
	switch {
	case !decodingStrong && comprehensionStrong:
		focus = "Decoding skills lag behind comprehension: focus on phonics and decoding practice"
	case decodingStrong && !comprehensionStrong:
		focus = "Decoding is stronger than comprehension: focus on comprehension strategies"
	}
	return strengths, needs, focus
}
