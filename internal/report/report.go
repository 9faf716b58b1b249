// Package report prints profiles, placements and plans for a terminal.
// Every report that shows a profile, placement or plan ends with its
// disclaimer text verbatim.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/placement"
	"github.com/neurobreath/placement/internal/plan"
	"github.com/neurobreath/placement/internal/profile"
)

// DefaultWidth is the report width when none is configured.
const DefaultWidth = 60

// Renderer writes reports to w.
type Renderer struct {
	w     io.Writer
	theme Theme
	width int
}

// New creates a Renderer. A width below 20 uses DefaultWidth.
func New(w io.Writer, theme Theme, width int) *Renderer {
	if width < 20 {
		width = DefaultWidth
	}
	return &Renderer{w: w, theme: theme, width: width}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Profile prints a reading profile.
func (r *Renderer) Profile(p profile.Profile) error {
	t := r.theme
	var b strings.Builder

	b.WriteString(t.paint(t.Title, "Reading Profile") + "\n\n")

	band := profile.BandDisplay(p.OverallBand)
	conf := profile.ConfidenceDisplay(p.Confidence)
	fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Overall band:"), t.paint(t.Body, band.Label))
	fmt.Fprintf(&b, "  %s\n", t.paint(t.Hint, band.Description))
	fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Confidence:  "), r.confidence(p.Confidence, conf.Label))
	fmt.Fprintf(&b, "  %s\n\n", t.paint(t.Hint, conf.Description))

	b.WriteString(t.paint(t.Heading, "Skills") + "\n")
	for _, d := range profile.AllDomains() {
		s := p.Score(d)
		line := t.scoreBar(pad(d.Name(), 16), s.Score, r.width-14)
		fmt.Fprintf(&b, "%s  %s\n", line, r.evidence(s))
	}

	if p.ORF != nil {
		m := p.ORF
		b.WriteString("\n" + t.paint(t.Heading, "Oral reading") + "\n")
		fmt.Fprintf(&b, "  %.1f WCPM, %.1f%% accuracy, %d of %d words correct in %.0fs\n",
			m.WCPM, m.AccuracyPct, m.WordsCorrect, m.TotalWords, m.DurationSeconds)
		if m.SelfCorrections > 0 {
			fmt.Fprintf(&b, "  %d self-correction%s\n", m.SelfCorrections, plural(m.SelfCorrections))
		}
	}

	r.list(&b, "Strengths", p.Strengths, t.Good)
	r.list(&b, "Needs", p.Needs, t.Weak)
	fmt.Fprintf(&b, "\n%s %s\n", t.paint(t.Label, "Suggested focus:"), p.SuggestedFocus)

	b.WriteString("\n" + t.paint(t.Disclaimer, p.Disclaimer) + "\n")
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Placement prints a placement result.
func (r *Renderer) Placement(res placement.Result) error {
	t := r.theme
	var b strings.Builder

	b.WriteString(t.paint(t.Title, "Placement") + "\n\n")

	fmt.Fprintf(&b, "%s %s %s\n", t.paint(t.Label, "Starting level:"),
		t.paint(t.Good, res.Level.String()), t.paint(t.Body, res.Level.Label()))
	fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Learner group: "), res.Group.Label())
	fmt.Fprintf(&b, "%s %s (%s placement)\n", t.paint(t.Label, "Confidence:    "),
		r.confidence(res.Confidence, res.Confidence.String()), res.Method)
	if c := res.LevelChange; c != nil {
		fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Change:        "), describeChange(*c))
	}

	b.WriteString("\n" + t.paint(t.Heading, "Skill levels") + "\n")
	for _, d := range profile.AllDomains() {
		l := res.SkillLevels.Get(d)
		fmt.Fprintf(&b, "  %s %s %s\n", pad(d.Name(), 16), l, t.paint(t.Hint, l.Label()))
	}

	r.list(&b, "Limiting skills", res.LimitingSkills, t.Weak)
	r.list(&b, "Strongest skills", res.StrongestSkills, t.Good)
	r.list(&b, "Recommended focus", res.RecommendedFocus, t.Body)

	fmt.Fprintf(&b, "\n%s\n", res.Explanation)
	b.WriteString("\n" + t.paint(t.Disclaimer, res.Disclaimer) + "\n")
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Plan prints a practice plan, week by week.
func (r *Renderer) Plan(p plan.Plan) error {
	t := r.theme
	var b strings.Builder

	b.WriteString(t.paint(t.Title, "Practice Plan") + "\n\n")
	fmt.Fprintf(&b, "%s %s, %d weeks, %d days a week, %d minutes a day\n",
		t.paint(t.Label, "Start:"), p.Placement.Level, p.TotalWeeks, p.DaysPerWeek, p.MinutesPerDay)
	if p.LevelLabel != "" {
		fmt.Fprintf(&b, "%s %s\n", t.paint(t.Heading, p.LevelLabel), t.paint(t.Hint, p.LevelDescription))
	}
	if sl := p.StartingLesson; sl != nil {
		fmt.Fprintf(&b, "%s %s %s\n", t.paint(t.Label, "First lesson:"), sl.Title,
			t.paint(t.Hint, fmt.Sprintf("(%s, %d min, %d in this level)", sl.Type, sl.DurationMinutes, len(p.LessonPath))))
	}
	if len(p.PrimaryFocus) > 0 {
		fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Primary focus:  "), strings.Join(p.PrimaryFocus, ", "))
	}
	if len(p.SecondaryFocus) > 0 {
		fmt.Fprintf(&b, "%s %s\n", t.paint(t.Label, "Secondary focus:"), strings.Join(p.SecondaryFocus, ", "))
	}

	for _, w := range p.Weeks {
		fmt.Fprintf(&b, "\n%s %s\n", t.paint(t.Heading, fmt.Sprintf("Week %d", w.Number)),
			t.paint(t.Hint, fmt.Sprintf("%s %s, %d min", w.Level, w.Level.Label(), w.Minutes)))
		fmt.Fprintf(&b, "  %s %s\n", t.paint(t.Label, "Goal:"), w.Goal)
		for day := 1; day <= p.DaysPerWeek; day++ {
			entries := p.Day(w.Number, day)
			if len(entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s %s\n", t.paint(t.Body, plan.DayLabel(day)), t.paint(t.Hint, p.FocusArea(w.Number, day)))
			for _, e := range entries {
				marker := "-"
				if !e.Required {
					marker = "+"
				}
				fmt.Fprintf(&b, "    %s %s %s\n", marker, e.Title,
					t.paint(t.Hint, fmt.Sprintf("(%s, %d min)", e.Type, e.Minutes)))
			}
		}
		for _, m := range w.Milestones {
			fmt.Fprintf(&b, "  %s %s\n", t.paint(t.Caution, "*"), m)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", t.paint(t.Heading, fmt.Sprintf("Reassess after %d weeks", p.ReassessAfterWeeks)))
	for _, c := range p.ReassessmentCriteria {
		fmt.Fprintf(&b, "  - %s\n", c)
	}

	b.WriteString("\n" + t.paint(t.Disclaimer, p.Disclaimer) + "\n")
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Catalog prints the lessons of a catalog, grouped by level. A non-nil
// only restricts the listing to one level.
func (r *Renderer) Catalog(c *catalog.Catalog, only *level.Level) error {
	t := r.theme
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", t.paint(t.Title, "Lesson catalog"), t.paint(t.Hint, c.Version()))
	for _, l := range c.Levels() {
		if only != nil && *only != l {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", t.paint(t.Heading, l.String()), l.Label())
		for _, lesson := range c.AtLevel(l) {
			groups := "all groups"
			if len(lesson.Groups) > 0 {
				names := make([]string, len(lesson.Groups))
				for i, g := range lesson.Groups {
					names[i] = string(g)
				}
				groups = strings.Join(names, ", ")
			}
			fmt.Fprintf(&b, "  %d. %s %s\n", lesson.Position, lesson.Title,
				t.paint(t.Hint, fmt.Sprintf("[%s] %s, %d min, %s", lesson.Slug, lesson.Type, lesson.DurationMinutes, groups)))
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// HistoryItem is one row of a placement history.
type HistoryItem struct {
	At     time.Time
	Result placement.Result
}

// History prints placements newest first.
func (r *Renderer) History(learnerID string, items []HistoryItem) error {
	t := r.theme
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", t.paint(t.Title, "Placement history"), t.paint(t.Hint, learnerID))
	if len(items) == 0 {
		b.WriteString(t.paint(t.Hint, "No placements recorded.") + "\n")
	}
	for _, it := range items {
		res := it.Result
		line := fmt.Sprintf("%s  %s  %-6s %s", it.At.Format(time.DateTime), res.Level, res.Method,
			r.confidence(res.Confidence, res.Confidence.String()))
		if c := res.LevelChange; c != nil {
			line += "  " + t.paint(t.Hint, describeChange(*c))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + t.paint(t.Disclaimer, level.PlacementDisclaimer) + "\n")
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) confidence(c profile.Confidence, text string) string {
	switch c {
	case profile.High:
		return r.theme.paint(r.theme.Good, text)
	case profile.Medium:
		return r.theme.paint(r.theme.Caution, text)
	default:
		return r.theme.paint(r.theme.Weak, text)
	}
}

func (r *Renderer) evidence(s profile.SkillScore) string {
	text := fmt.Sprintf("%d/%d items", s.ItemsAssessed, s.MinItemsRequired)
	if s.Sufficient() {
		return r.theme.paint(r.theme.Hint, text)
	}
	return r.theme.paint(r.theme.Caution, text)
}

func (r *Renderer) list(b *strings.Builder, heading string, items []string, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", r.theme.paint(r.theme.Heading, heading))
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", r.theme.paint(style, it))
	}
}

func describeChange(c placement.LevelChange) string {
	switch c.Direction {
	case placement.Up:
		return fmt.Sprintf("up %d level%s", c.Steps, plural(c.Steps))
	case placement.Down:
		return fmt.Sprintf("down %d level%s", c.Steps, plural(c.Steps))
	default:
		return "same level as before"
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
