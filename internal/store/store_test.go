package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/placement"
	"github.com/neurobreath/placement/internal/profile"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// tickingClock advances by one minute on every call.
func tickingClock() Clock {
	var n atomic.Int64
	return func() time.Time {
		return epoch.Add(time.Duration(n.Add(1)) * time.Minute)
	}
}

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	// Each test gets its own shared-cache memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn, append([]Option{WithClock(tickingClock())}, opts...)...)
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProfile() profile.Profile {
	return profile.Build(profile.Assessment{
		Decoding:        &profile.Counts{Correct: 18, Total: 20},
		WordRecognition: &profile.Counts{Correct: 17, Total: 20},
		Comprehension:   &profile.Counts{Correct: 6, Total: 8},
	})
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
	require.NoError(t, s.DB().Ping())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked with a file-based DB below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nbplace.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.migrate(context.Background()))
}

func TestAssessmentSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.Assessments()
	ctx := context.Background()

	rec, err := repo.Latest(ctx, "learner-1")
	require.NoError(t, err)
	assert.Nil(t, rec, "no assessments yet")

	p := sampleProfile()
	first, err := repo.Save(ctx, "learner-1", p)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, epoch.Add(time.Minute), first.CreatedAt)

	second, err := repo.Save(ctx, "learner-1", p)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = repo.Save(ctx, "learner-2", p)
	require.NoError(t, err)

	got, err := repo.Latest(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, second.CreatedAt, got.CreatedAt)
	assert.Equal(t, p, got.Profile)
}

func TestLatestBreaksTimestampTiesByInsertOrder(t *testing.T) {
	fixed := func() time.Time { return epoch }
	s := openTestStore(t, WithClock(fixed))
	ctx := context.Background()

	_, err := s.Assessments().Save(ctx, "l", sampleProfile())
	require.NoError(t, err)
	last, err := s.Assessments().Save(ctx, "l", sampleProfile())
	require.NoError(t, err)

	got, err := s.Assessments().Latest(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, last.ID, got.ID)
}

func TestPlacementSaveLatestHistory(t *testing.T) {
	seq := 0
	ids := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	s := openTestStore(t, WithIDs(ids))
	ctx := context.Background()

	a, err := s.Assessments().Save(ctx, "learner-1", sampleProfile())
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ID)

	full := placement.Place(placement.Input{Profile: a.Profile, Group: level.Youth})
	prev := full.Level
	quick := placement.QuickPlace(placement.QuickInput{Group: level.Youth, Previous: &prev})

	r1, err := s.Placements().Save(ctx, "learner-1", a.ID, full)
	require.NoError(t, err)
	r2, err := s.Placements().Save(ctx, "learner-1", "", quick)
	require.NoError(t, err)

	latest, err := s.Placements().Latest(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, r2.ID, latest.ID)
	assert.Empty(t, latest.AssessmentID)
	assert.Equal(t, placement.Quick, latest.Result.Method)
	require.NotNil(t, latest.Result.LevelChange)

	hist, err := s.Placements().History(ctx, "learner-1", 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, []string{r2.ID, r1.ID}, []string{hist[0].ID, hist[1].ID})
	assert.Equal(t, a.ID, hist[1].AssessmentID)
	assert.Equal(t, full, hist[1].Result)

	limited, err := s.Placements().History(ctx, "learner-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, r2.ID, limited[0].ID)

	none, err := s.Placements().Latest(ctx, "someone-else")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPlacementRejectsUnknownAssessment(t *testing.T) {
	s := openTestStore(t)
	res := placement.QuickPlace(placement.QuickInput{})
	_, err := s.Placements().Save(context.Background(), "l", "missing", res)
	assert.Error(t, err, "foreign key should reject unknown assessment")
}

func TestCatalogSeedLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.Catalogs()
	ctx := context.Background()

	def := catalog.Default()
	seeded, err := repo.Seed(ctx, def)
	require.NoError(t, err)
	assert.True(t, seeded)

	again, err := repo.Seed(ctx, def)
	require.NoError(t, err)
	assert.False(t, again, "reseeding an existing version is a no-op")

	got, err := repo.Load(ctx, def.Version())
	require.NoError(t, err)
	assert.Equal(t, def.Version(), got.Version())
	assert.Equal(t, def.Lessons(), got.Lessons())
}

func TestCatalogLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Catalogs().Load(context.Background(), "v9.9.9")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestCatalogVersionsSorted(t *testing.T) {
	s := openTestStore(t)
	repo := s.Catalogs()
	ctx := context.Background()

	lesson := catalog.Lesson{
		Slug:            "only",
		Title:           "Only lesson",
		Level:           level.L0,
		SkillFocus:      []string{"phonics"},
		Type:            catalog.TypeLesson,
		DurationMinutes: 5,
		Position:        1,
	}
	for _, v := range []string{"v1.10.0", "v1.2.0", "v0.9.0"} {
		c, err := catalog.New(v, []catalog.Lesson{lesson})
		require.NoError(t, err)
		_, err = repo.Seed(ctx, c)
		require.NoError(t, err)
	}

	versions, err := repo.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v0.9.0", "v1.2.0", "v1.10.0"}, versions)
}

func TestSeedEmptyCatalog(t *testing.T) {
	s := openTestStore(t)
	c, err := catalog.New("v0.1.0", nil)
	require.NoError(t, err)

	seeded, err := s.Catalogs().Seed(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, seeded)

	got, err := s.Catalogs().Load(context.Background(), "v0.1.0")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "override", "x.db")
		t.Setenv("NBPLACE_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("NBPLACE_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "nbplace", "nbplace.db"), got)
	})
}
