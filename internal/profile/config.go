package profile

// Evidence-sufficiency minimums per domain.
const (
	MinDecodingItems        = 15 // pseudowords
	MinWordRecognitionItems = 20 // words
	MinFluencyWords         = 50 // passage words
	MinComprehensionItems   = 6  // questions
)

// Config holds the tunable tables used by the scoring pipeline.
type Config struct {
	// MinItems is the evidence-sufficiency threshold per domain.
	MinItems map[Domain]int
	// OverallWeights weight each domain's band ordinal, in hundredths.
	// They must sum to 100.
	OverallWeights map[Domain]int
}

// DefaultConfig returns the standard evidence thresholds and weights.
func DefaultConfig() Config {
	return Config{
		MinItems: map[Domain]int{
			Decoding:        MinDecodingItems,
			WordRecognition: MinWordRecognitionItems,
			Fluency:         MinFluencyWords,
			Comprehension:   MinComprehensionItems,
		},
		OverallWeights: map[Domain]int{
			Decoding:        25,
			WordRecognition: 25,
			Fluency:         30,
			Comprehension:   20,
		},
	}
}

func (c Config) minItems(d Domain) int {
	if v, ok := c.MinItems[d]; ok && v > 0 {
		return v
	}
	return DefaultConfig().MinItems[d]
}

// weights returns the overall weights, falling back to the defaults when
// the configured table does not cover every domain or sum to 100.
func (c Config) weights() map[Domain]int {
	sum := 0
	for _, d := range AllDomains() {
		w, ok := c.OverallWeights[d]
		if !ok || w < 0 {
			return DefaultConfig().OverallWeights
		}
		sum += w
	}
	if sum != 100 {
		return DefaultConfig().OverallWeights
	}
	return c.OverallWeights
}
