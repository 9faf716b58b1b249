package profile

import (
	"reflect"
	"strings"
	"testing"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/orf"
)

func fullAssessment() Assessment {
	return Assessment{
		Decoding:        &Counts{Correct: 19, Total: 20},
		WordRecognition: &Counts{Correct: 23, Total: 25},
		Reading: &Reading{
			TotalWords:      100,
			DurationSeconds: 60,
			Errors: []orf.ErrorMark{
				{WordIndex: 3, WordText: "ship", Kind: orf.Substitution},
				{WordIndex: 9, WordText: "the", Kind: orf.Omission, Corrected: true},
			},
		},
		Comprehension: &Counts{Correct: 7, Total: 8},
	}
}

func TestBuild_EmptyAssessment(t *testing.T) {
	p := Build(Assessment{})

	for _, d := range AllDomains() {
		s := p.Score(d)
		if s.Score != 0 || s.Band != level.Beginner || s.ItemsAssessed != 0 {
			t.Errorf("%s = %+v, want zero evidence", d, s)
		}
	}
	if p.OverallBand != level.Beginner {
		t.Errorf("OverallBand = %s, want beginner", p.OverallBand)
	}
	if p.Confidence != Low {
		t.Errorf("Confidence = %s, want low", p.Confidence)
	}
	if p.Disclaimer != TrainingDisclaimer {
		t.Error("profile missing training disclaimer")
	}
	if p.ORF != nil {
		t.Error("ORF should be nil without a reading")
	}
}

func TestBuild_MinItemsTable(t *testing.T) {
	p := Build(Assessment{})
	want := map[Domain]int{
		Decoding:        15,
		WordRecognition: 20,
		Fluency:         50,
		Comprehension:   6,
	}
	for d, n := range want {
		if got := p.Score(d).MinItemsRequired; got != n {
			t.Errorf("%s MinItemsRequired = %d, want %d", d, got, n)
		}
	}
}

func TestBuild_FullAssessment(t *testing.T) {
	p := Build(fullAssessment())

	if p.ORF == nil || p.ORF.WordsCorrect != 99 {
		t.Fatalf("ORF = %+v, want 99 words correct", p.ORF)
	}
	if p.Decoding.Score != 95 || p.Decoding.Band != level.Intermediate {
		t.Errorf("Decoding = %+v", p.Decoding)
	}
	if p.Confidence != High {
		t.Errorf("Confidence = %s, want high", p.Confidence)
	}
	// 99 wcpm, 99% -> intermediate fluency
	if p.Fluency.Band != level.Intermediate {
		t.Errorf("Fluency band = %s, want intermediate", p.Fluency.Band)
	}
}

func TestBuild_MetricsWinOverReading(t *testing.T) {
	a := fullAssessment()
	a.Metrics = &orf.Metrics{TotalWords: 60, WordsCorrect: 60, WCPM: 130, AccuracyPct: 100}
	p := Build(a)
	if p.ORF.TotalWords != 60 || p.Fluency.Band != level.Advanced {
		t.Errorf("expected precomputed metrics to be used, got %+v / %+v", p.ORF, p.Fluency)
	}
	a.Metrics.WCPM = 0
	if p.ORF.WCPM != 130 {
		t.Error("profile aliases caller metrics")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := fullAssessment()
	first := Build(a)
	for i := 0; i < 5; i++ {
		if got := Build(a); !reflect.DeepEqual(got, first) {
			t.Fatalf("Build not deterministic:\n%+v\n%+v", first, got)
		}
	}
}

func TestConfidence_MonotonicInSufficientDomains(t *testing.T) {
	steps := []Assessment{
		{Decoding: &Counts{10, 15}},
		{Decoding: &Counts{10, 15}, WordRecognition: &Counts{10, 20}},
		{Decoding: &Counts{10, 15}, WordRecognition: &Counts{10, 20}, Comprehension: &Counts{3, 6}},
		{Decoding: &Counts{10, 15}, WordRecognition: &Counts{10, 20}, Comprehension: &Counts{3, 6},
			Reading: &Reading{TotalWords: 50, DurationSeconds: 60}},
	}
	want := []Confidence{Low, Medium, High, High}
	prev := Low
	for i, a := range steps {
		c := Build(a).Confidence
		if c != want[i] {
			t.Errorf("%d sufficient domains: confidence %s, want %s", i+1, c, want[i])
		}
		if c < prev {
			t.Errorf("confidence decreased from %s to %s", prev, c)
		}
		prev = c
	}
	for n := 0; n < 4; n++ {
		if ConfidenceFromSufficient(n+1) < ConfidenceFromSufficient(n) {
			t.Errorf("ConfidenceFromSufficient not monotonic at %d", n)
		}
	}
}

func TestOverallBand_WithinComponentRange(t *testing.T) {
	weights := DefaultConfig().weights()
	bands := level.AllBands()
	for _, d := range bands {
		for _, w := range bands {
			for _, f := range bands {
				for _, c := range bands {
					p := Profile{
						Decoding:        SkillScore{Band: d},
						WordRecognition: SkillScore{Band: w},
						Fluency:         SkillScore{Band: f},
						Comprehension:   SkillScore{Band: c},
					}
					got := overallBand(p, weights)
					lo := min(d, w, f, c)
					hi := max(d, w, f, c)
					if got < lo || got > hi {
						t.Fatalf("overallBand(%s,%s,%s,%s) = %s outside [%s,%s]", d, w, f, c, got, lo, hi)
					}
				}
			}
		}
	}
}

func TestOverallBand_RoundsHalfUp(t *testing.T) {
	// 1*25 + 1*25 + 0 + 0 = 50 hundredths -> 0.5 -> elementary
	p := Profile{
		Decoding:        SkillScore{Band: level.Elementary},
		WordRecognition: SkillScore{Band: level.Elementary},
	}
	if got := overallBand(p, DefaultConfig().weights()); got != level.Elementary {
		t.Errorf("overallBand = %s, want elementary", got)
	}
}

func TestConfig_InvalidWeightsFallBack(t *testing.T) {
	cfg := Config{OverallWeights: map[Domain]int{Decoding: 100}}
	if !reflect.DeepEqual(cfg.weights(), DefaultConfig().OverallWeights) {
		t.Error("incomplete weights should fall back to defaults")
	}
	cfg = Config{MinItems: map[Domain]int{Decoding: 3}}
	p := BuildWith(Assessment{Decoding: &Counts{3, 3}}, cfg)
	if !p.Decoding.Sufficient() || p.Decoding.MinItemsRequired != 3 {
		t.Errorf("custom MinItems not applied: %+v", p.Decoding)
	}
	if p.WordRecognition.MinItemsRequired != MinWordRecognitionItems {
		t.Error("missing MinItems entry should use default")
	}
}

func TestStrengthsNeedsFocus(t *testing.T) {
	p := Build(Assessment{
		Decoding:        &Counts{12, 20}, // 60 beginner
		WordRecognition: &Counts{17, 20}, // 85 elementary
		Reading:         &Reading{TotalWords: 100, DurationSeconds: 60},
		Comprehension:   &Counts{6, 6}, // 100 advanced
	})

	if len(p.Strengths) == 0 || !strings.HasPrefix(p.Strengths[0], "Comprehension") {
		t.Errorf("Strengths = %v, want comprehension first", p.Strengths)
	}
	found := false
	for _, n := range p.Needs {
		if strings.HasPrefix(n, "Decoding") {
			found = true
		}
	}
	if !found {
		t.Errorf("Needs = %v, want decoding", p.Needs)
	}
	if !strings.Contains(p.SuggestedFocus, "lag behind comprehension") {
		t.Errorf("SuggestedFocus = %q", p.SuggestedFocus)
	}
}

func TestSuggestedFocus_ComprehensionWeaker(t *testing.T) {
	p := Build(Assessment{
		Decoding:      &Counts{20, 20},
		Comprehension: &Counts{2, 6},
	})
	if !strings.Contains(p.SuggestedFocus, "stronger than comprehension") {
		t.Errorf("SuggestedFocus = %q", p.SuggestedFocus)
	}
}

func TestSuggestedFocus_DefaultsToLowestDomain(t *testing.T) {
	p := Build(Assessment{
		Decoding:        &Counts{20, 20},
		WordRecognition: &Counts{10, 20},
		Reading:         &Reading{TotalWords: 100, DurationSeconds: 40},
		Comprehension:   &Counts{6, 6},
	})
	if p.SuggestedFocus != "Focus on sight word recognition" {
		t.Errorf("SuggestedFocus = %q", p.SuggestedFocus)
	}
	if got := p.Ranked(); got[len(got)-1] != WordRecognition {
		t.Errorf("Ranked() = %v", got)
	}
}

func TestStrengthsNeedsNeverNil(t *testing.T) {
	p := Build(Assessment{})
	if p.Strengths == nil || p.Needs == nil {
		t.Error("Strengths and Needs should be empty slices, not nil")
	}
}
