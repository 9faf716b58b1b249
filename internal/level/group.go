package level

import (
	"fmt"
	"strings"
)

// LearnerGroup classifies the audience a lesson is framed for. It is
// independent of proficiency.
type LearnerGroup string

const (
	Children    LearnerGroup = "children"
	Youth       LearnerGroup = "youth"
	Adolescence LearnerGroup = "adolescence"
	Adult       LearnerGroup = "adult"
)

// AllLearnerGroups returns every group, youngest first.
func AllLearnerGroups() []LearnerGroup {
	return []LearnerGroup{Children, Youth, Adolescence, Adult}
}

// GroupConfig describes a learner group and its practice defaults.
type GroupConfig struct {
	Group         LearnerGroup
	Label         string
	AgeRange      string
	Description   string
	ContentTone   string
	TopicTags     []string
	MinutesPerDay int
	DaysPerWeek   int
}

// Valid reports whether g is a defined group.
func (g LearnerGroup) Valid() bool {
	_, ok := groupConfigs[g]
	return ok
}

// Config returns the group's configuration. Unknown groups get the adult
// configuration.
func (g LearnerGroup) Config() GroupConfig {
	c, ok := groupConfigs[g]
	if !ok {
		c = groupConfigs[Adult]
	}
	c.TopicTags = append([]string(nil), c.TopicTags...)
	return c
}

// Label returns the display name of the group.
func (g LearnerGroup) Label() string {
	return g.Config().Label
}

// ParseLearnerGroup resolves a group name, case-insensitively.
func ParseLearnerGroup(s string) (LearnerGroup, error) {
	g := LearnerGroup(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return Adult, fmt.Errorf("unknown learner group %q", s)
	}
	return g, nil
}

var groupConfigs = map[LearnerGroup]GroupConfig{
	Children: {
		Group: Children, Label: "Children", AgeRange: "6–10",
		Description:   "Primary school age learners",
		ContentTone:   "playful, encouraging, simple language",
		TopicTags:     []string{"animals", "adventure", "fantasy", "nature", "school", "family"},
		MinutesPerDay: 15, DaysPerWeek: 5,
	},
	Youth: {
		Group: Youth, Label: "Youth", AgeRange: "11–13",
		Description:   "Upper primary / early secondary learners",
		ContentTone:   "friendly, age-appropriate, relatable",
		TopicTags:     []string{"sports", "technology", "music", "animals", "science", "mystery"},
		MinutesPerDay: 20, DaysPerWeek: 5,
	},
	Adolescence: {
		Group: Adolescence, Label: "Adolescence", AgeRange: "14–17",
		Description:   "Secondary school learners",
		ContentTone:   "respectful, mature, relevant to teen life",
		TopicTags:     []string{"current-events", "careers", "relationships", "sports", "science", "social-issues"},
		MinutesPerDay: 25, DaysPerWeek: 4,
	},
	Adult: {
		Group: Adult, Label: "Adult", AgeRange: "18+",
		Description:   "Adult learners",
		ContentTone:   "professional, practical, dignity-preserving",
		TopicTags:     []string{"work", "finance", "health", "news", "life-skills", "community"},
		MinutesPerDay: 30, DaysPerWeek: 4,
	},
}
