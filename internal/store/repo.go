package store

import (
	"context"
	"errors"
	"time"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/placement"
	"github.com/neurobreath/placement/internal/profile"
)

// ErrCatalogNotFound is returned when a requested catalog version has not
// been seeded.
var ErrCatalogNotFound = errors.New("catalog version not found")

// AssessmentRecord is a stored reading profile.
type AssessmentRecord struct {
	ID        string          `json:"id"`
	LearnerID string          `json:"learner_id"`
	CreatedAt time.Time       `json:"created_at"`
	Profile   profile.Profile `json:"profile"`
}

// AssessmentRepo stores reading profiles.
type AssessmentRepo interface {
	// Save stores a profile for a learner.
	Save(ctx context.Context, learnerID string, p profile.Profile) (*AssessmentRecord, error)

	// Latest returns the learner's most recent profile, or nil if none exist.
	Latest(ctx context.Context, learnerID string) (*AssessmentRecord, error)
}

// PlacementRecord is a stored placement result.
type PlacementRecord struct {
	ID           string           `json:"id"`
	LearnerID    string           `json:"learner_id"`
	AssessmentID string           `json:"assessment_id,omitempty"` // empty for quick placements
	CreatedAt    time.Time        `json:"created_at"`
	Result       placement.Result `json:"placement"`
}

// PlacementRepo stores placement results.
type PlacementRepo interface {
	// Save stores a placement. assessmentID may be empty.
	Save(ctx context.Context, learnerID, assessmentID string, r placement.Result) (*PlacementRecord, error)

	// Latest returns the learner's most recent placement, or nil if none exist.
	Latest(ctx context.Context, learnerID string) (*PlacementRecord, error)

	// History returns placements newest first. A limit of 0 returns all.
	History(ctx context.Context, learnerID string, limit int) ([]PlacementRecord, error)
}

// CatalogRepo stores versioned lesson catalogs.
type CatalogRepo interface {
	// Seed stores a catalog version. Seeding a version that already exists
	// is a no-op and reports false.
	Seed(ctx context.Context, c *catalog.Catalog) (bool, error)

	// Load rebuilds a stored catalog version. Returns ErrCatalogNotFound if
	// the version was never seeded.
	Load(ctx context.Context, version string) (*catalog.Catalog, error)

	// Versions lists stored versions in ascending semantic version order.
	Versions(ctx context.Context) ([]string, error)
}

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}
