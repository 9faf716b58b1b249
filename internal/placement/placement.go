// Package placement assigns a learner to a level on the internal scale,
// either from a full reading profile or from a reduced quick check.
package placement

import (
	"fmt"
	"strings"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/profile"
)

// Method records which entry point produced a result.
type Method string

const (
	Full  Method = "full"
	Quick Method = "quick"
)

// Direction is the sign of a level change.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Same Direction = "same"
)

// LevelChange compares a placement to the learner's previous level.
type LevelChange struct {
	Direction Direction `json:"direction"`
	Steps     int       `json:"steps"`
}

// SkillLevels is the level each domain reaches on its own.
type SkillLevels struct {
	Decoding        level.Level `json:"decoding"`
	WordRecognition level.Level `json:"word_recognition"`
	Fluency         level.Level `json:"fluency"`
	Comprehension   level.Level `json:"comprehension"`
}

// Get returns the skill level for a domain.
func (s SkillLevels) Get(d profile.Domain) level.Level {
	switch d {
	case profile.Decoding:
		return s.Decoding
	case profile.WordRecognition:
		return s.WordRecognition
	case profile.Fluency:
		return s.Fluency
	default:
		return s.Comprehension
	}
}

func (s *SkillLevels) set(d profile.Domain, l level.Level) {
	switch d {
	case profile.Decoding:
		s.Decoding = l
	case profile.WordRecognition:
		s.WordRecognition = l
	case profile.Fluency:
		s.Fluency = l
	default:
		s.Comprehension = l
	}
}

func (s SkillLevels) bounds() (lo, hi level.Level) {
	lo, hi = level.Last, level.First
	for _, d := range profile.AllDomains() {
		l := s.Get(d)
		lo = min(lo, l)
		hi = max(hi, l)
	}
	return lo, hi
}

// Result is an immutable placement outcome.
type Result struct {
	Level            level.Level        `json:"level"`
	Group            level.LearnerGroup `json:"learner_group"`
	Confidence       profile.Confidence `json:"confidence"`
	Method           Method             `json:"method"`
	SkillLevels      SkillLevels        `json:"skill_levels"`
	LimitingSkills   []string           `json:"limiting_skills"`
	StrongestSkills  []string           `json:"strongest_skills"`
	RecommendedFocus []string           `json:"recommended_focus"`
	LevelChange      *LevelChange       `json:"level_change,omitempty"`
	Explanation      string             `json:"explanation"`
	Disclaimer       string             `json:"disclaimer"`
}

// Input is a full placement request.
type Input struct {
	Profile profile.Profile
	// Group selects the domain weights and content framing. An invalid
	// group is treated as adult.
	Group    level.LearnerGroup
	Previous *level.Level
}

// groupWeights are per-domain weights in hundredths. Younger groups lean
// on decoding and fluency; older groups on comprehension.
var groupWeights = map[level.LearnerGroup]map[profile.Domain]int{
	level.Children: {
		profile.Decoding: 30, profile.WordRecognition: 25, profile.Fluency: 30, profile.Comprehension: 15,
	},
	level.Youth: {
		profile.Decoding: 25, profile.WordRecognition: 25, profile.Fluency: 30, profile.Comprehension: 20,
	},
	level.Adolescence: {
		profile.Decoding: 20, profile.WordRecognition: 20, profile.Fluency: 30, profile.Comprehension: 30,
	},
	level.Adult: {
		profile.Decoding: 20, profile.WordRecognition: 20, profile.Fluency: 25, profile.Comprehension: 35,
	},
}

// Weights returns a copy of the domain weights (hundredths) used for a
// learner group.
func Weights(g level.LearnerGroup) map[profile.Domain]int {
	w, ok := groupWeights[g]
	if !ok {
		w = groupWeights[level.Adult]
	}
	out := make(map[profile.Domain]int, len(w))
	for d, v := range w {
		out[d] = v
	}
	return out
}

// SkillLevel returns the highest level whose threshold for domain d the
// score meets.
func SkillLevel(d profile.Domain, score int) level.Level {
	v := float64(score)
	for l := level.Last; l > level.First; l-- {
		if v >= threshold(l.Config().Thresholds, d) {
			return l
		}
	}
	return level.First
}

func threshold(t level.Thresholds, d profile.Domain) float64 {
	switch d {
	case profile.Decoding:
		return t.DecodingMin
	case profile.WordRecognition:
		return t.WordRecognitionMin
	case profile.Fluency:
		return t.FluencyMin
	default:
		return t.ComprehensionMin
	}
}

// Place derives a level from a full reading profile.
//
// Each domain score is leveled against its own thresholds, the levels
// are combined with the group's weights and floored, then capped at one
// level above the weakest domain. The result is finally kept inside the
// level range of the profile's overall band, so the band decides the
// neighbourhood and the scores decide the position within it.
func Place(in Input) Result {
	group := normalizeGroup(in.Group)
	p := in.Profile

	var skills SkillLevels
	for _, d := range profile.AllDomains() {
		skills.set(d, SkillLevel(d, p.Score(d).Score))
	}

	weights := groupWeights[group]
	sum := 0
	for _, d := range profile.AllDomains() {
		sum += skills.Get(d).Value() * weights[d]
	}
	raw := level.Level(sum / 100)

	lowest, _ := skills.bounds()
	ceiling := min(lowest+1, level.Last)
	anchored := raw > ceiling
	l := min(raw, ceiling)

	bandLo, bandHi := level.BandRange(p.OverallBand)
	aligned := l < bandLo || l > bandHi
	l = min(max(l, bandLo), bandHi)

	limiting, strongest := extremes(skills)

	r := Result{
		Level:            l,
		Group:            group,
		Confidence:       p.Confidence,
		Method:           Full,
		SkillLevels:      skills,
		LimitingSkills:   limiting,
		StrongestSkills:  strongest,
		RecommendedFocus: recommendedFocus(skills, group),
		LevelChange:      change(l, in.Previous),
		Disclaimer:       level.PlacementDisclaimer,
	}

	var reason string
	switch {
	case aligned:
		reason = fmt.Sprintf("was aligned with the overall %s reading band.", p.OverallBand)
	case anchored:
		reason = fmt.Sprintf("was adjusted to ensure %s skills are supported.", strings.Join(limiting, " and "))
	default:
		reason = "is based on a weighted combination of all skill areas."
	}
	r.Explanation = explain("Placement", l, group, reason)
	return r
}

func normalizeGroup(g level.LearnerGroup) level.LearnerGroup {
	if !g.Valid() {
		return level.Adult
	}
	return g
}

// extremes returns the names of the domains tied at the lowest and at the
// highest skill level, in reporting order.
func extremes(skills SkillLevels) (limiting, strongest []string) {
	lo, hi := skills.bounds()
	limiting = []string{}
	strongest = []string{}
	for _, d := range profile.AllDomains() {
		if skills.Get(d) == lo {
			limiting = append(limiting, d.Name())
		}
		if skills.Get(d) == hi {
			strongest = append(strongest, d.Name())
		}
	}
	return limiting, strongest
}

var focusLabels = map[profile.Domain]string{
	profile.Decoding:        "Phonics and decoding practice",
	profile.WordRecognition: "Sight word recognition",
	profile.Fluency:         "Reading fluency and expression",
	profile.Comprehension:   "Reading comprehension strategies",
}

// recommendedFocus names domains more than half a level below the mean
// skill level, plus group-specific suggestions.
func recommendedFocus(skills SkillLevels, group level.LearnerGroup) []string {
	total := 0
	for _, d := range profile.AllDomains() {
		total += skills.Get(d).Value()
	}
	mean := float64(total) / 4

	focus := []string{}
	for _, d := range profile.AllDomains() {
		if float64(skills.Get(d).Value()) < mean-0.5 {
			focus = append(focus, focusLabels[d])
		}
	}
	if group == level.Adult && len(focus) == 0 {
		focus = append(focus, "Practical reading applications")
	}
	if group == level.Children && skills.Fluency < level.L3 {
		focus = append(focus, "Repeated reading practice")
	}
	if len(focus) == 0 {
		focus = append(focus, "Continue building on strengths")
	}
	return focus
}

func change(l level.Level, previous *level.Level) *LevelChange {
	if previous == nil {
		return nil
	}
	diff := level.Distance(*previous, l)
	c := &LevelChange{Direction: Same, Steps: diff}
	switch {
	case diff > 0:
		c.Direction = Up
	case diff < 0:
		c.Direction = Down
		c.Steps = -diff
	}
	return c
}

func explain(prefix string, l level.Level, group level.LearnerGroup, reason string) string {
	cfg := l.Config()
	gc := group.Config()
	focus := cfg.SkillFocus
	if len(focus) > 2 {
		focus = focus[:2]
	}
	return fmt.Sprintf("%s at %s (%s) %s This starting point focuses on: %s. Content will be adapted for %s (%s).",
		prefix, cfg.Label, l, reason, strings.Join(focus, ", "), strings.ToLower(gc.Label), gc.AgeRange)
}
