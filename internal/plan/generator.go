package plan

import (
	"fmt"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/level"
)

// Generate builds a plan for req from src.
//
// Week by week it schedules lessons at the current level that apply to
// the learner group and fit the daily budget. Each day is packed greedily
// without exceeding the budget, preferring lessons not yet used this week
// and lessons that add a skill tag the week has not covered. The level
// advances once every eligible lesson at it has been scheduled, or after
// MaxWeeksPerLevel weeks, skipping levels with no eligible lessons. At the
// top of the scale, or when nothing above is eligible, lessons repeat.
//
// The only error is a *Error wrapping ErrCannotGeneratePlan, returned when
// src has no lessons at the placed level at all.
func Generate(src Source, req Request) (Plan, error) {
	pl := req.Placement
	group := pl.Group
	if !group.Valid() {
		group = level.Adult
	}
	if src == nil {
		return Plan{}, &Error{Level: pl.Level, Group: group, Reason: "no lesson catalog"}
	}
	if len(src.AtLevel(pl.Level)) == 0 {
		return Plan{}, &Error{Level: pl.Level, Group: group, Reason: "catalog has no lessons at this level"}
	}

	s := newScheduler(src, req, group)
	s.run()

	cfg := pl.Level.Config()
	path := s.eligible(pl.Level)
	p := Plan{
		Placement:            pl,
		LevelLabel:           cfg.Label,
		LevelDescription:     cfg.Description,
		LessonPath:           path,
		Entries:              s.entries,
		Weeks:                s.weeks,
		MinutesPerDay:        s.minutes,
		DaysPerWeek:          s.days,
		TotalWeeks:           s.totalWeeks,
		SecondaryFocus:       tail(cfg.SkillFocus, 2),
		ReassessAfterWeeks:   min(ReassessAfterWeeks, s.totalWeeks),
		ReassessmentCriteria: criteria(s.days),
		Disclaimer:           level.PlacementDisclaimer,
		GeneratedAt:          req.GeneratedAt,
	}
	if len(pl.LimitingSkills) > 0 && len(pl.RecommendedFocus) > 0 {
		p.PrimaryFocus = append([]string(nil), pl.RecommendedFocus...)
	} else {
		p.PrimaryFocus = head(cfg.SkillFocus, 2)
	}
	if len(path) > 0 {
		first := path[0]
		p.StartingLesson = &first
	}
	return p, nil
}

type scheduler struct {
	src        Source
	group      level.LearnerGroup
	start      level.Level
	minutes    int
	days       int
	totalWeeks int
	maxPer     int

	entries []Entry
	weeks   []Week
	uses    map[string]int
}

func newScheduler(src Source, req Request, group level.LearnerGroup) *scheduler {
	gc := group.Config()
	s := &scheduler{
		src:        src,
		group:      group,
		start:      req.Placement.Level,
		minutes:    req.MinutesPerDay,
		days:       req.DaysPerWeek,
		totalWeeks: req.Weeks,
		maxPer:     req.MaxWeeksPerLevel,
		uses:       make(map[string]int),
	}
	if s.minutes <= 0 {
		s.minutes = gc.MinutesPerDay
	}
	if s.days <= 0 {
		s.days = gc.DaysPerWeek
	}
	s.days = min(s.days, MaxDaysPerWeek)
	if s.totalWeeks <= 0 {
		s.totalWeeks = DefaultWeeks
	}
	if s.maxPer <= 0 {
		s.maxPer = DefaultMaxWeeksPerLevel
	}
	return s
}

// eligible returns the lessons at l the learner may be given on a day with
// the full budget available.
func (s *scheduler) eligible(l level.Level) []catalog.Lesson {
	var out []catalog.Lesson
	for _, ls := range s.src.AtLevel(l) {
		if ls.Level == l && ls.AppliesTo(s.group) && ls.DurationMinutes <= s.minutes {
			out = append(out, ls)
		}
	}
	return out
}

// nextEligible returns the first level above cur with an eligible lesson.
func (s *scheduler) nextEligible(cur level.Level) (level.Level, bool) {
	for l, ok := level.NextOK(cur); ok; l, ok = level.NextOK(l) {
		if len(s.eligible(l)) > 0 {
			return l, true
		}
	}
	return cur, false
}

func (s *scheduler) run() {
	cur := s.start
	weeksAtLevel := 0
	covered := make(map[string]bool)

	for week := 1; week <= s.totalWeeks; week++ {
		pool := s.eligible(cur)
		w := s.scheduleWeek(week, cur, pool, covered, weeksAtLevel)
		weeksAtLevel++

		allCovered := true
		for _, ls := range pool {
			if !covered[ls.Slug] {
				allCovered = false
				break
			}
		}
		if allCovered || weeksAtLevel >= s.maxPer {
			if next, ok := s.nextEligible(cur); ok {
				cur = next
				weeksAtLevel = 0
				covered = make(map[string]bool)
			}
		}
		if week == s.totalWeeks {
			finalGoal(&w)
		}
		s.weeks = append(s.weeks, w)
	}
}

func (s *scheduler) scheduleWeek(week int, cur level.Level, pool []catalog.Lesson, covered map[string]bool, weeksAtLevel int) Week {
	w := Week{Number: week, Level: cur}
	scheduled := make(map[string]bool)
	tags := make(map[string]bool)

	for day := 1; day <= s.days; day++ {
		remaining := s.minutes
		today := make(map[string]bool)
		order := 0
		for {
			i := s.pick(pool, remaining, today, scheduled, tags, covered)
			if i < 0 {
				break
			}
			ls := pool[i]
			order++
			s.entries = append(s.entries, Entry{
				Week:       week,
				Day:        day,
				DayLabel:   DayLabel(day),
				Order:      order,
				Required:   order == 1,
				Slug:       ls.Slug,
				Title:      ls.Title,
				Level:      ls.Level,
				SkillFocus: append([]string(nil), ls.SkillFocus...),
				Type:       ls.Type,
				Minutes:    ls.DurationMinutes,
			})
			remaining -= ls.DurationMinutes
			w.Minutes += ls.DurationMinutes
			today[ls.Slug] = true
			if !scheduled[ls.Slug] {
				w.Lessons = append(w.Lessons, ls.Slug)
			}
			scheduled[ls.Slug] = true
			covered[ls.Slug] = true
			s.uses[ls.Slug]++
			for _, t := range ls.SkillFocus {
				tags[t] = true
			}
		}
	}

	cfg := cur.Config()
	if weeksAtLevel == 0 {
		w.Goal = fmt.Sprintf("Build foundations in %s", cfg.Label)
		w.TargetSkills = head(cfg.SkillFocus, 2)
		w.Milestones = []string{
			fmt.Sprintf("Finish the first %s lessons", cfg.Label),
			"Establish a daily practice routine",
		}
	} else {
		w.Goal = fmt.Sprintf("Practice and consolidate %s skills", cfg.Label)
		w.TargetSkills = append([]string(nil), cfg.SkillFocus...)
		w.Milestones = []string{
			"Complete the remaining core lessons",
			"Review challenging areas",
		}
	}
	if len(w.Lessons) == 0 {
		w.Milestones = append(w.Milestones, "No new lessons fit this week; revisit earlier activities")
	}
	return w
}

// finalGoal points the last week of the plan at the next level.
func finalGoal(w *Week) {
	w.Milestones = append(w.Milestones, "Take progress reassessment")
	if up, ok := level.NextOK(w.Level); ok {
		w.Goal = fmt.Sprintf("Prepare for transition to %s", up.Label())
		w.Milestones = append(w.Milestones, fmt.Sprintf("Ready for %s", up))
		return
	}
	w.Goal = fmt.Sprintf("Master %s skills", w.Level.Label())
	w.Milestones = append(w.Milestones, "Continue advanced practice")
}

// pick returns the index in pool of the best lesson that fits the remaining
// budget and is not already scheduled today, or -1.
func (s *scheduler) pick(pool []catalog.Lesson, remaining int, today, week, tags, covered map[string]bool) int {
	best := -1
	var bestKey candidate
	for i, ls := range pool {
		if today[ls.Slug] || ls.DurationMinutes > remaining {
			continue
		}
		k := candidate{
			repeatWeek: week[ls.Slug],
			newTag:     addsTag(ls, tags),
			covered:    covered[ls.Slug],
			uses:       s.uses[ls.Slug],
			index:      i,
		}
		if best < 0 || k.less(bestKey) {
			best, bestKey = i, k
		}
	}
	return best
}

type candidate struct {
	repeatWeek bool
	newTag     bool
	covered    bool
	uses       int
	index      int
}

func (a candidate) less(b candidate) bool {
	if a.repeatWeek != b.repeatWeek {
		return !a.repeatWeek
	}
	if a.newTag != b.newTag {
		return a.newTag
	}
	if a.covered != b.covered {
		return !a.covered
	}
	if a.uses != b.uses {
		return a.uses < b.uses
	}
	return a.index < b.index
}

func addsTag(ls catalog.Lesson, tags map[string]bool) bool {
	for _, t := range ls.SkillFocus {
		if !tags[t] {
			return true
		}
	}
	return false
}

func criteria(days int) []string {
	return []string{
		"Complete at least 80% of recommended lessons",
		fmt.Sprintf("Practice at least %d days per week", min(3, days)),
		"Finish weekly milestones",
	}
}

func head(s []string, n int) []string {
	return append([]string{}, s[:min(n, len(s))]...)
}

func tail(s []string, n int) []string {
	return append([]string{}, s[min(n, len(s)):]...)
}
