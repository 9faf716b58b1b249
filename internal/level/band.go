package level

import (
	"fmt"
	"strings"
)

// Band is one of the four ordered proficiency tiers. It is used per domain,
// for a profile's overall result, and as the legacy placement scale.
type Band int

const (
	Beginner Band = iota
	Elementary
	Intermediate
	Advanced
)

// AllBands returns the bands from least to most proficient.
func AllBands() []Band {
	return []Band{Beginner, Elementary, Intermediate, Advanced}
}

// Valid reports whether b is a defined band.
func (b Band) Valid() bool {
	return b >= Beginner && b <= Advanced
}

// Ordinal returns the band's position, 0 for beginner through 3 for advanced.
func (b Band) Ordinal() int {
	return int(b)
}

func (b Band) String() string {
	switch b {
	case Beginner:
		return "beginner"
	case Elementary:
		return "elementary"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// AtLeast reports whether b is as proficient as other or more.
func (b Band) AtLeast(other Band) bool {
	return b >= other
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid band %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a band name.
func (b *Band) UnmarshalText(text []byte) error {
	v, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBand resolves a band name, case-insensitively.
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "elementary":
		return Elementary, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return Beginner, fmt.Errorf("unknown band %q", s)
}

// BandFromOrdinal clamps an ordinal to [0,3] and returns its band.
func BandFromOrdinal(i int) Band {
	if i < int(Beginner) {
		return Beginner
	}
	if i > int(Advanced) {
		return Advanced
	}
	return Band(i)
}

// MinBand returns the less proficient of two bands.
func MinBand(a, b Band) Band {
	if a < b {
		return a
	}
	return b
}

// ToLegacyBand maps a level onto the coarser four-band scale used by
// older data: L0-L1 beginner, L2-L3 elementary, L4-L5 intermediate,
// L6-L8 advanced.
func ToLegacyBand(l Level) Band {
	switch v := clamp(l); {
	case v <= L1:
		return Beginner
	case v <= L3:
		return Elementary
	case v <= L5:
		return Intermediate
	default:
		return Advanced
	}
}

// FromLegacyBand maps a legacy band to the representative level inside it.
func FromLegacyBand(b Band) Level {
	switch b {
	case Elementary:
		return L3
	case Intermediate:
		return L5
	case Advanced:
		return L7
	default:
		return L1
	}
}

// ParseLegacyBand maps a stored legacy band string to a level. Unknown
// strings fall back to the beginner representative.
func ParseLegacyBand(s string) Level {
	b, err := ParseBand(s)
	if err != nil {
		return FromLegacyBand(Beginner)
	}
	return FromLegacyBand(b)
}

// BandRange returns the lowest and highest levels that map to b.
func BandRange(b Band) (lo, hi Level) {
	switch b {
	case Elementary:
		return L2, L3
	case Intermediate:
		return L4, L5
	case Advanced:
		return L6, L8
	default:
		return L0, L1
	}
}
