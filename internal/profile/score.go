package profile

import (
	"math"

	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/orf"
)

// Domain is one of the four assessed reading skill areas.
type Domain string

const (
	Decoding        Domain = "decoding"
	WordRecognition Domain = "word_recognition"
	Fluency         Domain = "fluency"
	Comprehension   Domain = "comprehension"
)

// AllDomains returns the domains in reporting order.
func AllDomains() []Domain {
	return []Domain{Decoding, WordRecognition, Fluency, Comprehension}
}

// Name returns the display name of a domain.
func (d Domain) Name() string {
	switch d {
	case Decoding:
		return "Decoding"
	case WordRecognition:
		return "Word Recognition"
	case Fluency:
		return "Fluency"
	case Comprehension:
		return "Comprehension"
	default:
		return string(d)
	}
}

// FocusLabel returns the phrase used in practice recommendations.
func (d Domain) FocusLabel() string {
	switch d {
	case Decoding:
		return "decoding and phonics"
	case WordRecognition:
		return "sight word recognition"
	case Fluency:
		return "reading fluency and speed"
	case Comprehension:
		return "reading comprehension"
	default:
		return string(d)
	}
}

// SkillScore is the normalized result for one domain.
type SkillScore struct {
	Score            int        `json:"score"`
	Band             level.Band `json:"band"`
	ItemsAssessed    int        `json:"items_assessed"`
	MinItemsRequired int        `json:"min_items_required"`
}

// Sufficient reports whether the domain met its evidence threshold.
func (s SkillScore) Sufficient() bool {
	return s.ItemsAssessed >= s.MinItemsRequired
}

// BandFromAccuracy bands an accuracy percentage.
func BandFromAccuracy(accuracy float64) level.Band {
	switch {
	case accuracy >= 96:
		return level.Advanced
	case accuracy >= 90:
		return level.Intermediate
	case accuracy >= 80:
		return level.Elementary
	default:
		return level.Beginner
	}
}

// BandFromWCPM bands a words-correct-per-minute rate. These are internal
// benchmarks, not national norms.
func BandFromWCPM(wcpm float64) level.Band {
	switch {
	case wcpm >= 120:
		return level.Advanced
	case wcpm >= 80:
		return level.Intermediate
	case wcpm >= 45:
		return level.Elementary
	default:
		return level.Beginner
	}
}

// Accuracy returns correct/total as a percentage. A non-positive total
// returns 0; negative counts clamp to 0 and correct is capped at total.
func Accuracy(correct, total int) float64 {
	correct, total = clampCounts(correct, total)
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// AccuracyScore scores an accuracy-based domain from raw counts.
func AccuracyScore(correct, total, minItems int) SkillScore {
	_, total = clampCounts(correct, total)
	acc := Accuracy(correct, total)
	return SkillScore{
		Score:            roundHalfUp(acc),
		Band:             BandFromAccuracy(acc),
		ItemsAssessed:    total,
		MinItemsRequired: minItems,
	}
}

// FluencyScore combines rate and accuracy. The band is the lower of the
// WCPM band and the accuracy band; the score weights a WCPM score
// (150 WCPM = 100) at 60% and accuracy at 40%.
func FluencyScore(wcpm, accuracyPct float64, wordsRead, minWords int) SkillScore {
	wcpm = nonNegative(wcpm)
	accuracyPct = math.Min(nonNegative(accuracyPct), 100)

	band := level.MinBand(BandFromWCPM(wcpm), BandFromAccuracy(accuracyPct))
	wcpmScore := math.Min(100, wcpm/150*100)

	return SkillScore{
		Score:            roundHalfUp(0.6*wcpmScore + 0.4*accuracyPct),
		Band:             band,
		ItemsAssessed:    max(wordsRead, 0),
		MinItemsRequired: minWords,
	}
}

// FluencyFromMetrics scores fluency from ORF metrics, using the passage
// word count as the evidence quantity.
func FluencyFromMetrics(m orf.Metrics, minWords int) SkillScore {
	return FluencyScore(m.WCPM, m.AccuracyPct, m.TotalWords, minWords)
}

func clampCounts(correct, total int) (int, int) {
	total = max(total, 0)
	correct = min(max(correct, 0), total)
	return correct, total
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// roundHalfUp rounds a non-negative value to the nearest integer with
// halves going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
