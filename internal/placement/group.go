package placement

import (
	"strings"

	"github.com/neurobreath/placement/internal/level"
)

// Learner is the caller-supplied context used to choose a learner group.
// It never influences the level itself.
type Learner struct {
	Age   int    `json:"age,omitempty"`
	Role  string `json:"role,omitempty"`
	Group string `json:"group,omitempty"`
}

var roleGroups = map[string]level.LearnerGroup{
	"educator":     level.Adult,
	"teacher":      level.Adult,
	"parent":       level.Adult,
	"carer":        level.Adult,
	"caregiver":    level.Adult,
	"professional": level.Adult,
	"student":      level.Youth,
}

// ResolveGroup picks a learner group: an explicit valid group first, then
// age, then role, then adult. A non-positive age is treated as unknown.
func ResolveGroup(l Learner) level.LearnerGroup {
	if g, err := level.ParseLearnerGroup(l.Group); err == nil {
		return g
	}
	switch {
	case l.Age <= 0:
	case l.Age <= 10:
		return level.Children
	case l.Age <= 13:
		return level.Youth
	case l.Age <= 17:
		return level.Adolescence
	default:
		return level.Adult
	}
	if g, ok := roleGroups[strings.ToLower(strings.TrimSpace(l.Role))]; ok {
		return g
	}
	return level.Adult
}
