// Package plan turns a placement into a multi-week practice schedule drawn
// from a lesson catalog.
package plan

import (
	"strconv"
	"time"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/placement"
)

// Defaults applied when a Request leaves a field at zero.
const (
	DefaultWeeks            = 4
	DefaultMaxWeeksPerLevel = 2
	MaxDaysPerWeek          = 7
	ReassessAfterWeeks      = 4
)

// Source is the read-only lesson collection a plan draws from.
// *catalog.Catalog satisfies it.
type Source interface {
	AtLevel(l level.Level) []catalog.Lesson
}

// Request configures one plan generation.
type Request struct {
	Placement placement.Result
	// MinutesPerDay is the daily budget. Zero uses the learner group's
	// default.
	MinutesPerDay int
	// Weeks is the plan length. Zero uses DefaultWeeks.
	Weeks int
	// DaysPerWeek is capped at MaxDaysPerWeek. Zero uses the learner
	// group's default.
	DaysPerWeek int
	// MaxWeeksPerLevel forces advancement after this many weeks at one
	// level. Zero uses DefaultMaxWeeksPerLevel.
	MaxWeeksPerLevel int
	// GeneratedAt is copied onto the plan. Generation never reads the
	// clock.
	GeneratedAt time.Time
}

// Entry is one scheduled activity.
type Entry struct {
	Week       int          `json:"week"`
	Day        int          `json:"day"`
	DayLabel   string       `json:"day_label"`
	Order      int          `json:"order"`
	Required   bool         `json:"required"`
	Slug       string       `json:"slug"`
	Title      string       `json:"title"`
	Level      level.Level  `json:"level"`
	SkillFocus []string     `json:"skill_focus"`
	Type       catalog.Type `json:"type"`
	Minutes    int          `json:"minutes"`
}

// Week summarizes one week of the plan.
type Week struct {
	Number       int         `json:"number"`
	Level        level.Level `json:"level"`
	Goal         string      `json:"goal"`
	TargetSkills []string    `json:"target_skills"`
	Lessons      []string    `json:"lessons"`
	Milestones   []string    `json:"milestones"`
	Minutes      int         `json:"minutes"`
}

// MixedPractice is the focus area of a day with nothing scheduled.
const MixedPractice = "mixed practice"

// Plan is an immutable generated schedule.
type Plan struct {
	Placement        placement.Result `json:"placement"`
	LevelLabel       string           `json:"level_label"`
	LevelDescription string           `json:"level_description"`
	// StartingLesson is the first lesson of LessonPath, nil when no lesson
	// at the placed level fits the learner.
	StartingLesson *catalog.Lesson `json:"starting_lesson"`
	// LessonPath lists the lessons at the placed level the learner may be
	// given, in catalog order.
	LessonPath           []catalog.Lesson `json:"lesson_path"`
	Entries              []Entry          `json:"entries"`
	Weeks                []Week           `json:"weeks"`
	MinutesPerDay        int              `json:"minutes_per_day"`
	DaysPerWeek          int              `json:"days_per_week"`
	TotalWeeks           int              `json:"total_weeks"`
	PrimaryFocus         []string         `json:"primary_focus"`
	SecondaryFocus       []string         `json:"secondary_focus"`
	ReassessAfterWeeks   int              `json:"reassess_after_weeks"`
	ReassessmentCriteria []string         `json:"reassessment_criteria"`
	Disclaimer           string           `json:"disclaimer"`
	GeneratedAt          time.Time        `json:"generated_at,omitzero"`
}

// Day returns the entries scheduled on one day, in order.
func (p Plan) Day(week, day int) []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Week == week && e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// DayMinutes returns the minutes scheduled on one day.
func (p Plan) DayMinutes(week, day int) int {
	total := 0
	for _, e := range p.Day(week, day) {
		total += e.Minutes
	}
	return total
}

// FocusArea returns the first skill of the day's first lesson.
func (p Plan) FocusArea(week, day int) string {
	if entries := p.Day(week, day); len(entries) > 0 && len(entries[0].SkillFocus) > 0 {
		return entries[0].SkillFocus[0]
	}
	return MixedPractice
}

var dayLabels = [MaxDaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayLabel returns the display label for a 1-based day number.
func DayLabel(day int) string {
	if day >= 1 && day <= MaxDaysPerWeek {
		return dayLabels[day-1]
	}
	return "Day " + strconv.Itoa(day)
}
