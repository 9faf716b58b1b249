package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurobreath/placement/internal/level"
)

type catalogFile struct {
	Version string       `yaml:"version"`
	Lessons []lessonFile `yaml:"lessons"`
}

type lessonFile struct {
	Slug            string   `yaml:"slug"`
	Title           string   `yaml:"title"`
	Level           string   `yaml:"level"`
	Groups          []string `yaml:"groups,omitempty"`
	SkillFocus      []string `yaml:"skill_focus"`
	Type            string   `yaml:"type"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Position        int      `yaml:"position"`
}

// LoadYAML reads a catalog document:
//
//	version: v1.1.0
//	lessons:
//	  - slug: cvc-words-1
//	    title: "CVC Words: Short A"
//	    level: NB-L1
//	    groups: [children, youth]
//	    skill_focus: [decoding]
//	    type: lesson
//	    duration_minutes: 12
//	    position: 1
//
// Unknown fields are rejected.
func LoadYAML(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse catalog: empty document")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	lessons, err := f.lessons()
	if err != nil {
		return nil, err
	}
	return New(f.Version, lessons)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer fh.Close()

	c, err := LoadYAML(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("catalog loaded", "path", path, "version", c.Version(), "lessons", c.Len())
	return c, nil
}

func (f catalogFile) lessons() ([]Lesson, error) {
	var errs []string
	out := make([]Lesson, 0, len(f.Lessons))
	for i, lf := range f.Lessons {
		l := Lesson{
			Slug:            lf.Slug,
			Title:           lf.Title,
			SkillFocus:      lf.SkillFocus,
			Type:            Type(strings.ToLower(lf.Type)),
			DurationMinutes: lf.DurationMinutes,
			Position:        lf.Position,
		}
		lv, err := level.Parse(lf.Level)
		if err != nil {
			errs = append(errs, fmt.Sprintf("lesson %d (%q): %v", i, lf.Slug, err))
		}
		l.Level = lv
		for _, gs := range lf.Groups {
			g, err := level.ParseLearnerGroup(gs)
			if err != nil {
				errs = append(errs, fmt.Sprintf("lesson %d (%q): %v", i, lf.Slug, err))
				continue
			}
			l.Groups = append(l.Groups, g)
		}
		out = append(out, l)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return out, nil
}

// WriteYAML encodes c in the format LoadYAML reads.
func WriteYAML(w io.Writer, c *Catalog) error {
	f := catalogFile{Version: c.Version()}
	for _, l := range c.Lessons() {
		lf := lessonFile{
			Slug:            l.Slug,
			Title:           l.Title,
			Level:           l.Level.String(),
			SkillFocus:      l.SkillFocus,
			Type:            string(l.Type),
			DurationMinutes: l.DurationMinutes,
			Position:        l.Position,
		}
		for _, g := range l.Groups {
			lf.Groups = append(lf.Groups, string(g))
		}
		f.Lessons = append(f.Lessons, lf)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
