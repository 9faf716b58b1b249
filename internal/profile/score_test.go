package profile

import (
	"testing"

	"github.com/neurobreath/placement/internal/level"
)

func TestBandFromAccuracy_StepBoundaries(t *testing.T) {
	tests := []struct {
		acc  float64
		want level.Band
	}{
		{100, level.Advanced},
		{96.0, level.Advanced},
		{95.9, level.Intermediate},
		{90.0, level.Intermediate},
		{89.9, level.Elementary},
		{80.0, level.Elementary},
		{79.9, level.Beginner},
		{0, level.Beginner},
	}
	for _, tt := range tests {
		if got := BandFromAccuracy(tt.acc); got != tt.want {
			t.Errorf("BandFromAccuracy(%v) = %s, want %s", tt.acc, got, tt.want)
		}
	}
}

func TestBandFromWCPM_StepBoundaries(t *testing.T) {
	tests := []struct {
		wcpm float64
		want level.Band
	}{
		{150, level.Advanced},
		{120, level.Advanced},
		{119.9, level.Intermediate},
		{80, level.Intermediate},
		{79.9, level.Elementary},
		{45, level.Elementary},
		{44.9, level.Beginner},
	}
	for _, tt := range tests {
		if got := BandFromWCPM(tt.wcpm); got != tt.want {
			t.Errorf("BandFromWCPM(%v) = %s, want %s", tt.wcpm, got, tt.want)
		}
	}
}

func TestAccuracyScore(t *testing.T) {
	tests := []struct {
		name           string
		correct, total int
		wantScore      int
		wantBand       level.Band
		wantItems      int
	}{
		{"perfect", 20, 20, 100, level.Advanced, 20},
		{"ninety", 18, 20, 90, level.Intermediate, 20},
		{"rounding half up", 1, 8, 13, level.Beginner, 8},
		{"zero total", 5, 0, 0, level.Beginner, 0},
		{"negative counts", -3, -10, 0, level.Beginner, 0},
		{"correct above total", 30, 20, 100, level.Advanced, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AccuracyScore(tt.correct, tt.total, 15)
			if s.Score != tt.wantScore || s.Band != tt.wantBand || s.ItemsAssessed != tt.wantItems {
				t.Errorf("AccuracyScore(%d, %d) = %+v, want score %d band %s items %d",
					tt.correct, tt.total, s, tt.wantScore, tt.wantBand, tt.wantItems)
			}
			if s.MinItemsRequired != 15 {
				t.Errorf("MinItemsRequired = %d", s.MinItemsRequired)
			}
		})
	}
}

func TestAccuracyScore_ScoreAndBandShareSource(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for correct := 0; correct <= total; correct++ {
			s := AccuracyScore(correct, total, 1)
			if want := BandFromAccuracy(Accuracy(correct, total)); s.Band != want {
				t.Fatalf("%d/%d band %s, accuracy band %s", correct, total, s.Band, want)
			}
		}
	}
}

func TestFluencyScore_BandIsMinimumOfSignals(t *testing.T) {
	for wcpm := 0.0; wcpm <= 200; wcpm += 2.5 {
		for acc := 0.0; acc <= 100; acc += 0.5 {
			s := FluencyScore(wcpm, acc, 100, MinFluencyWords)
			want := level.MinBand(BandFromWCPM(wcpm), BandFromAccuracy(acc))
			if s.Band != want {
				t.Fatalf("FluencyScore(%v, %v).Band = %s, want %s", wcpm, acc, s.Band, want)
			}
			if s.Score < 0 || s.Score > 100 {
				t.Fatalf("FluencyScore(%v, %v).Score = %d out of range", wcpm, acc, s.Score)
			}
		}
	}
}

func TestFluencyScore_Weighting(t *testing.T) {
	// 75 wcpm -> wcpm score 50; 0.6*50 + 0.4*95 = 68
	s := FluencyScore(75, 95, 100, MinFluencyWords)
	if s.Score != 68 {
		t.Errorf("Score = %d, want 68", s.Score)
	}
	if s.Band != level.Elementary {
		t.Errorf("Band = %s, want elementary", s.Band)
	}
	// wcpm score caps at 100
	s = FluencyScore(300, 100, 100, MinFluencyWords)
	if s.Score != 100 {
		t.Errorf("capped Score = %d, want 100", s.Score)
	}
}
