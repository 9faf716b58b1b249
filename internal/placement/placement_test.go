package placement

import (
	"reflect"
	"strings"
	"testing"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/profile"
)

func scoredProfile(dec, word, flu, comp int, band level.Band) profile.Profile {
	return profile.Profile{
		Decoding:        profile.SkillScore{Score: dec, ItemsAssessed: 20, MinItemsRequired: 15},
		WordRecognition: profile.SkillScore{Score: word, ItemsAssessed: 25, MinItemsRequired: 20},
		Fluency:         profile.SkillScore{Score: flu, ItemsAssessed: 100, MinItemsRequired: 50},
		Comprehension:   profile.SkillScore{Score: comp, ItemsAssessed: 8, MinItemsRequired: 6},
		OverallBand:     band,
		Confidence:      profile.High,
	}
}

func TestSkillLevel(t *testing.T) {
	tests := []struct {
		domain profile.Domain
		score  int
		want   level.Level
	}{
		{profile.Decoding, 0, level.L0},
		{profile.Decoding, 19, level.L0},
		{profile.Decoding, 20, level.L1},
		{profile.Decoding, 94, level.L8},
		{profile.WordRecognition, 45, level.L3},
		{profile.Fluency, 100, level.L7},
		{profile.Fluency, 84, level.L5},
		{profile.Comprehension, 90, level.L8},
		{profile.Comprehension, 89, level.L7},
	}
	for _, tt := range tests {
		if got := SkillLevel(tt.domain, tt.score); got != tt.want {
			t.Errorf("SkillLevel(%s, %d) = %s, want %s", tt.domain, tt.score, got, tt.want)
		}
	}
}

func TestPlace_WeightedCombination(t *testing.T) {
	p := profile.Build(profile.Assessment{
		Decoding:        &profile.Counts{Correct: 20, Total: 20},
		WordRecognition: &profile.Counts{Correct: 20, Total: 20},
		Reading:         &profile.Reading{TotalWords: 150, DurationSeconds: 60},
		Comprehension:   &profile.Counts{Correct: 8, Total: 8},
	})
	r := Place(Input{Profile: p, Group: level.Adult})

	// adult: 8*.20 + 8*.20 + 7*.25 + 8*.35 = 7.75 -> L7
	if r.Level != level.L7 {
		t.Errorf("Level = %s, want NB-L7", r.Level)
	}
	if r.Confidence != profile.High || r.Method != Full {
		t.Errorf("Confidence = %s, Method = %s", r.Confidence, r.Method)
	}
	if r.Disclaimer != level.PlacementDisclaimer {
		t.Error("missing placement disclaimer")
	}
	if !strings.Contains(r.Explanation, "weighted combination") {
		t.Errorf("Explanation = %q", r.Explanation)
	}
	if !reflect.DeepEqual(r.LimitingSkills, []string{"Fluency"}) {
		t.Errorf("LimitingSkills = %v", r.LimitingSkills)
	}
	if !reflect.DeepEqual(r.StrongestSkills, []string{"Decoding", "Word Recognition", "Comprehension"}) {
		t.Errorf("StrongestSkills = %v", r.StrongestSkills)
	}
}

func TestPlace_LowestSkillAnchor(t *testing.T) {
	r := Place(Input{Profile: scoredProfile(20, 100, 100, 100, level.Elementary), Group: level.Adult})

	if r.Level != level.L2 {
		t.Errorf("Level = %s, want NB-L2 (lowest skill + 1)", r.Level)
	}
	if !strings.Contains(r.Explanation, "adjusted to ensure Decoding skills are supported") {
		t.Errorf("Explanation = %q", r.Explanation)
	}
	if r.RecommendedFocus[0] != "Phonics and decoding practice" {
		t.Errorf("RecommendedFocus = %v", r.RecommendedFocus)
	}
}

func TestPlace_ClampedToOverallBand(t *testing.T) {
	r := Place(Input{Profile: scoredProfile(20, 100, 100, 100, level.Advanced), Group: level.Adult})
	if r.Level != level.L6 {
		t.Errorf("Level = %s, want NB-L6", r.Level)
	}
	if !strings.Contains(r.Explanation, "aligned with the overall advanced reading band") {
		t.Errorf("Explanation = %q", r.Explanation)
	}

	r = Place(Input{Profile: scoredProfile(100, 100, 100, 100, level.Beginner), Group: level.Adult})
	if r.Level != level.L1 {
		t.Errorf("Level = %s, want NB-L1", r.Level)
	}
}

func TestPlace_ScoresResolveWithinBand(t *testing.T) {
	lo := Place(Input{Profile: scoredProfile(60, 55, 55, 50, level.Intermediate), Group: level.Youth})
	hi := Place(Input{Profile: scoredProfile(75, 70, 75, 65, level.Intermediate), Group: level.Youth})
	if lo.Level != level.L4 || hi.Level != level.L5 {
		t.Errorf("levels = %s, %s; want NB-L4, NB-L5", lo.Level, hi.Level)
	}
}

func TestPlace_LevelAlwaysInsideBandRange(t *testing.T) {
	steps := []int{0, 5, 10, 15, 20}
	for _, dec := range steps {
		for _, word := range steps {
			for _, comp := range []int{0, 2, 4, 6, 8} {
				for _, secs := range []float64{30, 60, 120, 240} {
					p := profile.Build(profile.Assessment{
						Decoding:        &profile.Counts{Correct: dec, Total: 20},
						WordRecognition: &profile.Counts{Correct: word, Total: 20},
						Reading:         &profile.Reading{TotalWords: 100, DurationSeconds: secs},
						Comprehension:   &profile.Counts{Correct: comp, Total: 8},
					})
					for _, g := range level.AllLearnerGroups() {
						r := Place(Input{Profile: p, Group: g})
						lo, hi := level.BandRange(p.OverallBand)
						if r.Level < lo || r.Level > hi {
							t.Fatalf("level %s outside %s band range [%s,%s]", r.Level, p.OverallBand, lo, hi)
						}
						if r.Confidence != p.Confidence {
							t.Fatalf("confidence %s not carried from profile %s", r.Confidence, p.Confidence)
						}
					}
				}
			}
		}
	}
}

func TestPlace_LevelChange(t *testing.T) {
	p := scoredProfile(100, 100, 100, 100, level.Advanced)
	tests := []struct {
		previous level.Level
		want     LevelChange
	}{
		{level.L3, LevelChange{Up, 4}},
		{level.L7, LevelChange{Same, 0}},
		{level.L8, LevelChange{Down, 1}},
	}
	for _, tt := range tests {
		prev := tt.previous
		r := Place(Input{Profile: p, Group: level.Adult, Previous: &prev})
		if r.LevelChange == nil || *r.LevelChange != tt.want {
			t.Errorf("previous %s: LevelChange = %+v, want %+v", tt.previous, r.LevelChange, tt.want)
		}
	}
	if r := Place(Input{Profile: p, Group: level.Adult}); r.LevelChange != nil {
		t.Error("LevelChange should be nil without a previous level")
	}
}

func TestPlace_GroupSpecificFocus(t *testing.T) {
	even := scoredProfile(60, 55, 55, 50, level.Intermediate)
	if r := Place(Input{Profile: even, Group: level.Adult}); !reflect.DeepEqual(r.RecommendedFocus, []string{"Practical reading applications"}) {
		t.Errorf("adult focus = %v", r.RecommendedFocus)
	}
	if r := Place(Input{Profile: even, Group: level.Youth}); !reflect.DeepEqual(r.RecommendedFocus, []string{"Continue building on strengths"}) {
		t.Errorf("youth focus = %v", r.RecommendedFocus)
	}
	weak := scoredProfile(40, 40, 30, 40, level.Elementary)
	r := Place(Input{Profile: weak, Group: level.Children})
	if r.RecommendedFocus[len(r.RecommendedFocus)-1] != "Repeated reading practice" {
		t.Errorf("children focus = %v", r.RecommendedFocus)
	}
}

func TestPlace_InvalidGroupIsAdult(t *testing.T) {
	r := Place(Input{Profile: scoredProfile(60, 55, 55, 50, level.Intermediate), Group: "martian"})
	if r.Group != level.Adult {
		t.Errorf("Group = %s, want adult", r.Group)
	}
	if !strings.Contains(r.Explanation, "adult (18+)") {
		t.Errorf("Explanation = %q", r.Explanation)
	}
}

func TestPlace_Deterministic(t *testing.T) {
	in := Input{Profile: scoredProfile(20, 100, 100, 100, level.Elementary), Group: level.Children}
	first := Place(in)
	for i := 0; i < 5; i++ {
		if got := Place(in); !reflect.DeepEqual(got, first) {
			t.Fatal("Place is not deterministic")
		}
	}
}

func TestWeightsSumTo100(t *testing.T) {
	for _, g := range level.AllLearnerGroups() {
		sum := 0
		for _, w := range Weights(g) {
			sum += w
		}
		if sum != 100 {
			t.Errorf("%s weights sum to %d", g, sum)
		}
	}
	w := Weights(level.Adult)
	w[profile.Decoding] = 99
	if Weights(level.Adult)[profile.Decoding] != 20 {
		t.Error("Weights returned shared map")
	}
}
