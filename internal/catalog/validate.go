package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// validate performs all structural checks on a lesson set. Returns a
// combined error describing all problems found, or nil if valid.
func validate(version string, lessons []Lesson) error {
	var errs []string

	if !semver.IsValid(version) {
		errs = append(errs, fmt.Sprintf("invalid catalog version %q (want semantic version like v1.2.0)", version))
	}

	seen := make(map[string]bool, len(lessons))
	for i, l := range lessons {
		prefix := fmt.Sprintf("lesson %d", i)
		if l.Slug != "" {
			prefix = fmt.Sprintf("lesson %q", l.Slug)
		}

		switch {
		case strings.TrimSpace(l.Slug) == "":
			errs = append(errs, fmt.Sprintf("%s: slug is required", prefix))
		case seen[l.Slug]:
			errs = append(errs, fmt.Sprintf("duplicate lesson slug: %q", l.Slug))
		}
		seen[l.Slug] = true

		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Sprintf("%s: title is required", prefix))
		}
		if !l.Level.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown level %d", prefix, int(l.Level)))
		}
		if l.DurationMinutes <= 0 {
			errs = append(errs, fmt.Sprintf("%s: duration must be > 0 minutes, got %d", prefix, l.DurationMinutes))
		}
		if !l.Type.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown lesson type %q", prefix, l.Type))
		}
		for _, g := range l.Groups {
			if !g.Valid() {
				errs = append(errs, fmt.Sprintf("%s: unknown learner group %q", prefix, g))
			}
		}
		if len(l.SkillFocus) == 0 {
			errs = append(errs, fmt.Sprintf("%s: at least one skill focus tag is required", prefix))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
