package profile

import (
	"fmt"
	"strings"

	"github.com/neurobreath/placement/internal/level"
)

// Confidence rates how reliable a profile is, from how many domains met
// their evidence threshold.
type Confidence int

const (
	Low Confidence = iota
	Medium
	High
)

func (c Confidence) String() string {
	switch c {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("confidence(%d)", int(c))
	}
}

// MarshalText encodes the confidence by name.
func (c Confidence) MarshalText() ([]byte, error) {
	if c < Low || c > High {
		return nil, fmt.Errorf("invalid confidence %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a confidence name.
func (c *Confidence) UnmarshalText(b []byte) error {
	v, err := ParseConfidence(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseConfidence resolves "low", "medium" or "high".
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Low, fmt.Errorf("unknown confidence %q", s)
}

// Display is the label and explanatory text shown alongside a value.
type Display struct {
	Label       string
	Description string
}

// BandDisplay returns display text for a band.
func BandDisplay(b level.Band) Display {
	switch b {
	case level.Advanced:
		return Display{"Advanced", "Strong reading skills across components"}
	case level.Intermediate:
		return Display{"Intermediate", "Good reading skills with room for growth"}
	case level.Elementary:
		return Display{"Elementary", "Building foundational reading skills"}
	default:
		return Display{"Beginner", "Starting the reading journey"}
	}
}

// ConfidenceDisplay returns display text for a confidence rating.
func ConfidenceDisplay(c Confidence) Display {
	switch c {
	case High:
		return Display{"High Confidence", "Multiple assessment components provide reliable evidence"}
	case Medium:
		return Display{"Medium Confidence", "Some components assessed; consider completing more sections"}
	default:
		return Display{"Low Confidence", "Limited evidence; complete more assessment components"}
	}
}

// TrainingDisclaimer accompanies every rendering of a profile verbatim.
const TrainingDisclaimer = "This is a training and monitoring tool only. It is NOT a diagnostic instrument. " +
	"The results shown are NeuroBreath internal indices (non-normed) and should not be compared to standardized assessments. " +
	"For formal diagnosis of reading difficulties or dyslexia, please consult a qualified educational psychologist, " +
	"reading specialist, or other appropriately credentialed professional."

// ShortTrainingDisclaimer is the compact form for space-limited output.
const ShortTrainingDisclaimer = "Training/monitoring only. Not for diagnosis."
