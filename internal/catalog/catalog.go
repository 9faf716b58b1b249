// Package catalog holds the versioned lesson reference data consumed by the
// plan generator. A Catalog is immutable once built.
package catalog

import (
	"sort"

	"golang.org/x/mod/semver"

	"github.com/neurobreath/placement/internal/level"
)

// Type is the kind of activity a lesson is.
type Type string

const (
	TypeLesson    Type = "lesson"
	TypePractice  Type = "practice"
	TypeGame      Type = "game"
	TypeWorksheet Type = "worksheet"
)

// AllTypes returns every lesson type.
func AllTypes() []Type {
	return []Type{TypeLesson, TypePractice, TypeGame, TypeWorksheet}
}

// Valid reports whether t is a defined lesson type.
func (t Type) Valid() bool {
	switch t {
	case TypeLesson, TypePractice, TypeGame, TypeWorksheet:
		return true
	}
	return false
}

// Lesson is one catalog entry.
type Lesson struct {
	Slug  string      `json:"slug"`
	Title string      `json:"title"`
	Level level.Level `json:"level"`
	// Groups lists the learner groups the lesson is framed for. Empty
	// means every group.
	Groups          []level.LearnerGroup `json:"groups,omitempty"`
	SkillFocus      []string             `json:"skill_focus"`
	Type            Type                 `json:"type"`
	DurationMinutes int                  `json:"duration_minutes"`
	// Position orders lessons within a level.
	Position int `json:"position"`
}

// AppliesTo reports whether the lesson may be shown to group g.
func (l Lesson) AppliesTo(g level.LearnerGroup) bool {
	if len(l.Groups) == 0 {
		return true
	}
	for _, lg := range l.Groups {
		if lg == g {
			return true
		}
	}
	return false
}

func (l Lesson) clone() Lesson {
	l.Groups = append([]level.LearnerGroup(nil), l.Groups...)
	l.SkillFocus = append([]string(nil), l.SkillFocus...)
	return l
}

// Catalog is a validated, ordered, read-only set of lessons. Lessons are
// kept sorted by level, then position, then input order. Accessors return
// copies so callers cannot mutate the catalog.
type Catalog struct {
	version string
	lessons []Lesson
	bySlug  map[string]int
	byLevel map[level.Level][]int
}

// New validates lessons and builds a catalog. The error, if any, lists
// every problem found.
func New(version string, lessons []Lesson) (*Catalog, error) {
	if err := validate(version, lessons); err != nil {
		return nil, err
	}

	sorted := make([]Lesson, len(lessons))
	for i, l := range lessons {
		sorted[i] = l.clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Level != sorted[j].Level {
			return sorted[i].Level < sorted[j].Level
		}
		return sorted[i].Position < sorted[j].Position
	})

	c := &Catalog{
		version: version,
		lessons: sorted,
		bySlug:  make(map[string]int, len(sorted)),
		byLevel: make(map[level.Level][]int),
	}
	for i, l := range sorted {
		c.bySlug[l.Slug] = i
		c.byLevel[l.Level] = append(c.byLevel[l.Level], i)
	}
	return c, nil
}

// Version returns the catalog's semantic version, e.g. "v1.0.0".
func (c *Catalog) Version() string { return c.version }

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }

// Lessons returns every lesson in catalog order.
func (c *Catalog) Lessons() []Lesson {
	out := make([]Lesson, len(c.lessons))
	for i, l := range c.lessons {
		out[i] = l.clone()
	}
	return out
}

// AtLevel returns the lessons at level l in intra-level order.
func (c *Catalog) AtLevel(l level.Level) []Lesson {
	idx := c.byLevel[l]
	out := make([]Lesson, len(idx))
	for i, j := range idx {
		out[i] = c.lessons[j].clone()
	}
	return out
}

// Levels returns the levels that have at least one lesson, ascending.
func (c *Catalog) Levels() []level.Level {
	var out []level.Level
	for _, l := range level.All() {
		if len(c.byLevel[l]) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Lookup finds a lesson by slug.
func (c *Catalog) Lookup(slug string) (Lesson, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i].clone(), true
}

// Newer reports whether c has a higher version than other.
func (c *Catalog) Newer(other *Catalog) bool {
	if other == nil {
		return true
	}
	return semver.Compare(c.version, other.version) > 0
}
