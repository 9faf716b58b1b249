package catalog

import (
	"sync"

	"github.com/neurobreath/placement/internal/level"
)

// DefaultVersion is the version of the seeded catalog.
const DefaultVersion = "v1.0.0"

// Default returns the seeded catalog: five lessons per level, open to
// every learner group.
var Default = sync.OnceValue(func() *Catalog {
	c, err := New(DefaultVersion, seedLessons())
	if err != nil {
		panic(err)
	}
	return c
})

type seed struct {
	slug, title string
	focus       []string
	minutes     int
	typ         Type
}

func seedLessons() []Lesson {
	var out []Lesson
	for l, seeds := range seedByLevel {
		for i, s := range seeds {
			out = append(out, Lesson{
				Slug:            s.slug,
				Title:           s.title,
				Level:           level.Level(l),
				SkillFocus:      s.focus,
				Type:            s.typ,
				DurationMinutes: s.minutes,
				Position:        i + 1,
			})
		}
	}
	return out
}

var (
	dec   = []string{"decoding"}
	word  = []string{"word-recognition"}
	flu   = []string{"fluency"}
	comp  = []string{"comprehension"}
	decFl = []string{"decoding", "fluency"}
	decWr = []string{"decoding", "word-recognition"}
	fluCo = []string{"fluency", "comprehension"}
	wrCo  = []string{"word-recognition", "comprehension"}
)

var seedByLevel = [...][]seed{
	level.L0: {
		{"letter-sounds-intro", "Letter Sounds Introduction", dec, 10, TypeLesson},
		{"letter-matching-game", "Letter Matching Game", dec, 8, TypeGame},
		{"phonemic-awareness-1", "Hearing Sounds in Words", dec, 12, TypeLesson},
		{"rhyme-time", "Rhyme Time", dec, 10, TypePractice},
		{"print-concepts", "How Books Work", flu, 8, TypeLesson},
	},
	level.L1: {
		{"cvc-words-1", "CVC Words: Short A", dec, 12, TypeLesson},
		{"cvc-words-2", "CVC Words: Short I", dec, 12, TypeLesson},
		{"cvc-blending", "Blending CVC Words", decFl, 10, TypePractice},
		{"sight-words-1", "Sight Words: Set 1", word, 10, TypeLesson},
		{"decodable-sentences-1", "Reading Simple Sentences", flu, 15, TypePractice},
	},
	level.L2: {
		{"blends-initial", "Initial Blends (bl, cr, st)", dec, 12, TypeLesson},
		{"blends-final", "Final Blends (nd, mp, sk)", dec, 12, TypeLesson},
		{"digraphs-1", "Digraphs: sh, ch, th", dec, 12, TypeLesson},
		{"sight-words-2", "Sight Words: Set 2", word, 10, TypeLesson},
		{"sentence-fluency-1", "Sentence Fluency Practice", flu, 15, TypePractice},
	},
	level.L3: {
		{"vowel-teams-1", "Vowel Teams: ea, ee", dec, 12, TypeLesson},
		{"vowel-teams-2", "Vowel Teams: ai, oa", dec, 12, TypeLesson},
		{"silent-e", "Silent-E Magic", dec, 12, TypeLesson},
		{"r-controlled", "R-Controlled Vowels", dec, 12, TypeLesson},
		{"paragraph-reading-1", "Reading Short Paragraphs", fluCo, 15, TypePractice},
	},
	level.L4: {
		{"syllable-division", "Breaking Words into Syllables", dec, 15, TypeLesson},
		{"prefixes-1", "Common Prefixes: un-, re-", decWr, 12, TypeLesson},
		{"suffixes-1", "Common Suffixes: -ing, -ed, -er", decWr, 12, TypeLesson},
		{"compound-words", "Compound Words", word, 10, TypeLesson},
		{"paragraph-fluency", "Paragraph Fluency Practice", flu, 15, TypePractice},
	},
	level.L5: {
		{"morphology-roots", "Word Roots", decWr, 15, TypeLesson},
		{"irregular-words", "Tricky Irregular Words", word, 12, TypeLesson},
		{"repeated-reading", "Repeated Reading for Fluency", flu, 15, TypePractice},
		{"prosody-practice", "Reading with Expression", flu, 12, TypeLesson},
		{"comprehension-basics", "Understanding What You Read", comp, 15, TypeLesson},
	},
	level.L6: {
		{"complex-sentences", "Complex Sentence Structures", fluCo, 15, TypeLesson},
		{"context-clues", "Vocabulary from Context", wrCo, 15, TypeLesson},
		{"making-inferences", "Reading Between the Lines", comp, 15, TypeLesson},
		{"text-structure", "Understanding Text Structure", comp, 12, TypeLesson},
		{"expository-reading", "Reading Informational Text", fluCo, 15, TypePractice},
	},
	level.L7: {
		{"academic-vocabulary", "Academic Word Study", wrCo, 15, TypeLesson},
		{"summarizing", "Summarizing Main Ideas", comp, 15, TypeLesson},
		{"critical-reading", "Critical Reading Skills", comp, 15, TypeLesson},
		{"extended-passages", "Extended Passage Practice", fluCo, 20, TypePractice},
		{"synthesis-practice", "Connecting Ideas Across Texts", comp, 15, TypeLesson},
	},
	level.L8: {
		{"advanced-strategies", "Advanced Comprehension Strategies", comp, 20, TypeLesson},
		{"efficient-reading", "Efficient Silent Reading", flu, 15, TypePractice},
		{"cross-text-analysis", "Cross-Text Comparison", comp, 20, TypeLesson},
		{"metacognition", "Thinking About Your Reading", comp, 15, TypeLesson},
		{"challenging-texts", "Challenging Text Practice", fluCo, 20, TypePractice},
	},
}
