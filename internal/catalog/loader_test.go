package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/neurobreath/placement/internal/level"
)

const sampleYAML = `version: v1.1.0
lessons:
  - slug: blends-initial
    title: "Initial Blends"
    level: NB-L2
    groups: [children, youth]
    skill_focus: [decoding]
    type: lesson
    duration_minutes: 12
    position: 1
  - slug: adult-forms
    title: "Reading Forms"
    level: L2
    groups: [adult]
    skill_focus: [comprehension, fluency]
    type: worksheet
    duration_minutes: 20
    position: 2
`

func TestLoadYAML(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if c.Version() != "v1.1.0" || c.Len() != 2 {
		t.Fatalf("got version %q with %d lessons", c.Version(), c.Len())
	}
	l, ok := c.Lookup("adult-forms")
	if !ok {
		t.Fatal("adult-forms missing")
	}
	if l.Level != level.L2 || l.Type != TypeWorksheet || !reflect.DeepEqual(l.Groups, []level.LearnerGroup{level.Adult}) {
		t.Errorf("adult-forms = %+v", l)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "version: v1.0.0\ncolour: red\n", "colour"},
		{"bad level", "version: v1.0.0\nlessons:\n  - slug: a\n    level: NB-L12\n", `unknown level "NB-L12"`},
		{"bad group", "version: v1.0.0\nlessons:\n  - slug: a\n    level: L1\n    groups: [pets]\n", `unknown learner group "pets"`},
		{"validation", "version: v1.0.0\nlessons:\n  - slug: a\n    title: A\n    level: L1\n    skill_focus: [decoding]\n    type: lesson\n", "duration must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAML_ReloadsSeedCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, Default()); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	c, err := LoadYAML(&buf)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if !reflect.DeepEqual(c.Lessons(), Default().Lessons()) {
		t.Error("written catalog does not reload to the same lessons")
	}
}
