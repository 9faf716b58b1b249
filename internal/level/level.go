package level

import (
	"fmt"
	"math"
	"strings"
)

// Level is a position on the internal NB-L0..NB-L8 placement scale.
// It is not a grade level or reading age.
type Level int

const (
	L0 Level = iota // Foundations
	L1              // CVC Decoding
	L2              // Consonant Blends
	L3              // Vowel Teams
	L4              // Multisyllable
	L5              // Morphology & Fluency
	L6              // Complex Text
	L7              // Academic Language
	L8              // Advanced
)

// First and Last bound the scale.
const (
	First = L0
	Last  = L8
)

// Thresholds are the minimum 0-100 domain scores expected at a level.
// FluencyMin is on the same scale as the fluency score, so the top
// value is deliberately unreachable for a score capped at 100.
type Thresholds struct {
	DecodingMin        float64
	WordRecognitionMin float64
	FluencyMin         float64
	ComprehensionMin   float64
}

// Config describes a single level.
type Config struct {
	Level       Level
	ID          string
	Label       string
	ShortLabel  string
	Description string
	SkillFocus  []string
	LessonTypes []string
	Thresholds  Thresholds
}

// All returns every level in ascending order.
func All() []Level {
	out := make([]Level, 0, len(configs))
	for l := First; l <= Last; l++ {
		out = append(out, l)
	}
	return out
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= First && l <= Last
}

// Config returns the level's configuration. An invalid level returns the
// configuration of the nearest boundary.
func (l Level) Config() Config {
	c := configs[clamp(l)]
	c.SkillFocus = append([]string(nil), c.SkillFocus...)
	c.LessonTypes = append([]string(nil), c.LessonTypes...)
	return c
}

// String returns the level identifier, e.g. "NB-L3".
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("NB-L?(%d)", int(l))
	}
	return configs[l].ID
}

// Label returns the human-readable level name.
func (l Level) Label() string {
	return configs[clamp(l)].Label
}

// Value returns the ordinal position (0-8).
func (l Level) Value() int {
	return int(l)
}

// MarshalText encodes the level as its identifier.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes an identifier such as "NB-L4".
func (l *Level) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Parse resolves "NB-L4", "L4" or "4" to a Level.
func Parse(s string) (Level, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.TrimPrefix(t, "NB-")
	t = strings.TrimPrefix(t, "L")
	if len(t) == 1 && t[0] >= '0' && t[0] <= '8' {
		return Level(t[0] - '0'), nil
	}
	return First, fmt.Errorf("unknown level %q", s)
}

// ByValue maps a numeric value to a level, rounding half up and clamping
// to the ends of the scale.
func ByValue(v float64) Level {
	if math.IsNaN(v) {
		return First
	}
	return clamp(Level(math.Floor(v + 0.5)))
}

// Next returns the level above l, or l itself at the top of the scale.
func Next(l Level) Level {
	n, _ := NextOK(l)
	return n
}

// NextOK is Next with an explicit flag for whether a move happened.
func NextOK(l Level) (Level, bool) {
	l = clamp(l)
	if l == Last {
		return Last, false
	}
	return l + 1, true
}

// Previous returns the level below l, or l itself at the bottom of the scale.
func Previous(l Level) Level {
	p, _ := PreviousOK(l)
	return p
}

// PreviousOK is Previous with an explicit flag for whether a move happened.
func PreviousOK(l Level) (Level, bool) {
	l = clamp(l)
	if l == First {
		return First, false
	}
	return l - 1, true
}

// Distance returns the signed number of steps from a to b.
func Distance(a, b Level) int {
	return int(clamp(b)) - int(clamp(a))
}

// IsHigher reports whether a is above b.
func IsHigher(a, b Level) bool {
	return clamp(a) > clamp(b)
}

func clamp(l Level) Level {
	if l < First {
		return First
	}
	if l > Last {
		return Last
	}
	return l
}

var configs = [...]Config{
	L0: {
		Level: L0, ID: "NB-L0", Label: "Foundations", ShortLabel: "L0",
		Description: "Letter-sound foundations, pre-reading skills",
		SkillFocus:  []string{"Letter recognition", "Sound-symbol correspondence", "Phonemic awareness", "Print concepts"},
		LessonTypes: []string{"Letter sounds", "Rhyme recognition", "Initial sound matching", "Environmental print"},
		Thresholds:  Thresholds{0, 0, 0, 0},
	},
	L1: {
		Level: L1, ID: "NB-L1", Label: "CVC Decoding", ShortLabel: "L1",
		Description: "CVC decoding + high-frequency words",
		SkillFocus:  []string{"CVC word decoding (cat, sit, hop)", "High-frequency sight words (the, is, a)", "Simple blending", "Word-by-word reading"},
		LessonTypes: []string{"CVC word families", "Blending practice", "Sight word flashcards", "Decodable sentences"},
		Thresholds:  Thresholds{20, 15, 10, 20},
	},
	L2: {
		Level: L2, ID: "NB-L2", Label: "Consonant Blends", ShortLabel: "L2",
		Description: "CVCC/CCVC patterns + simple sentences",
		SkillFocus:  []string{"Initial blends (bl, cr, st)", "Final blends (nd, mp, sk)", "Digraphs (sh, ch, th)", "Simple sentence reading"},
		LessonTypes: []string{"Blend sorting", "Digraph practice", "Sentence fluency", "Expanded sight words"},
		Thresholds:  Thresholds{35, 30, 25, 30},
	},
	L3: {
		Level: L3, ID: "NB-L3", Label: "Vowel Teams", ShortLabel: "L3",
		Description: "Vowel teams, silent-e, longer sentences",
		SkillFocus:  []string{"Vowel teams (ea, ai, oa, ee)", "Silent-e patterns", "R-controlled vowels", "Multi-sentence passages"},
		LessonTypes: []string{"Vowel team sorts", "Silent-e words", "Fluency phrases", "Short paragraph reading"},
		Thresholds:  Thresholds{50, 45, 40, 40},
	},
	L4: {
		Level: L4, ID: "NB-L4", Label: "Multisyllable", ShortLabel: "L4",
		Description: "Multisyllable decoding + basic morphology",
		SkillFocus:  []string{"Syllable division", "Common prefixes (un-, re-)", "Common suffixes (-ing, -ed, -er)", "Compound words"},
		LessonTypes: []string{"Syllable splitting", "Prefix/suffix cards", "Compound word building", "Paragraph fluency"},
		Thresholds:  Thresholds{60, 55, 55, 50},
	},
	L5: {
		Level: L5, ID: "NB-L5", Label: "Morphology & Fluency", ShortLabel: "L5",
		Description: "Morphology, irregular words, paragraph fluency",
		SkillFocus:  []string{"Advanced morphology", "Irregular high-frequency words", "Connected text fluency", "Expression and phrasing"},
		LessonTypes: []string{"Root word study", "Irregular word patterns", "Repeated reading", "Prosody practice"},
		Thresholds:  Thresholds{70, 65, 70, 60},
	},
	L6: {
		Level: L6, ID: "NB-L6", Label: "Complex Text", ShortLabel: "L6",
		Description: "Complex syntax, vocabulary-in-context, inference",
		SkillFocus:  []string{"Complex sentence structures", "Vocabulary from context", "Making inferences", "Text structure awareness"},
		LessonTypes: []string{"Sentence parsing", "Context clue strategies", "Inference practice", "Expository text"},
		Thresholds:  Thresholds{80, 75, 85, 70},
	},
	L7: {
		Level: L7, ID: "NB-L7", Label: "Academic Language", ShortLabel: "L7",
		Description: "Academic language, summarising, analysis",
		SkillFocus:  []string{"Academic vocabulary", "Summarizing main ideas", "Critical analysis", "Multi-paragraph fluency"},
		LessonTypes: []string{"Academic word lists", "Summary writing", "Critical reading", "Extended passages"},
		Thresholds:  Thresholds{88, 85, 100, 80},
	},
	L8: {
		Level: L8, ID: "NB-L8", Label: "Advanced", ShortLabel: "L8",
		Description: "Advanced comprehension, efficient fluency, synthesis",
		SkillFocus:  []string{"Advanced comprehension strategies", "Efficient silent reading", "Synthesis across texts", "Metacognitive monitoring"},
		LessonTypes: []string{"Strategy instruction", "Challenging texts", "Cross-text comparison", "Self-monitoring practice"},
		Thresholds:  Thresholds{94, 92, 120, 90},
	},
}
