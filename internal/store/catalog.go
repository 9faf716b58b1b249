package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"

	"github.com/neurobreath/placement/internal/catalog"
)

// catalogRepo implements CatalogRepo.
type catalogRepo struct {
	s *Store
}

func (r *catalogRepo) Seed(ctx context.Context, c *catalog.Catalog) (seeded bool, err error) {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	q, args := builder().Select(entsql.Count("*")).
		From(entsql.Table("catalog_versions")).
		Where(entsql.EQ("version", c.Version())).
		Query()
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check catalog version: %w", err)
	}
	if n > 0 {
		slog.Debug("catalog already seeded", "version", c.Version())
		return false, tx.Commit()
	}

	q, args = builder().Insert("catalog_versions").
		Columns("version", "seeded_at", "lesson_count").
		Values(c.Version(), formatTime(r.s.now()), c.Len()).
		Query()
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return false, fmt.Errorf("insert catalog version: %w", err)
	}

	if c.Len() > 0 {
		ins := builder().Insert("catalog_lessons").Columns("version", "slug", "level", "position", "lesson")
		for _, l := range c.Lessons() {
			raw, err := json.Marshal(l)
			if err != nil {
				return false, fmt.Errorf("marshal lesson %q: %w", l.Slug, err)
			}
			ins = ins.Values(c.Version(), l.Slug, l.Level.String(), l.Position, string(raw))
		}
		q, args = ins.Query()
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return false, fmt.Errorf("insert catalog lessons: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	slog.Info("catalog seeded", "version", c.Version(), "lessons", c.Len())
	return true, nil
}

func (r *catalogRepo) Load(ctx context.Context, version string) (*catalog.Catalog, error) {
	q, args := builder().Select(entsql.Count("*")).
		From(entsql.Table("catalog_versions")).
		Where(entsql.EQ("version", version)).
		Query()
	var n int
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return nil, fmt.Errorf("check catalog version: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, version)
	}

	q, args = builder().Select("lesson").
		From(entsql.Table("catalog_lessons")).
		Where(entsql.EQ("version", version)).
		OrderBy("level", "position", "slug").
		Query()
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog lessons: %w", err)
	}
	defer rows.Close()

	var lessons []catalog.Lesson
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		var l catalog.Lesson
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return nil, fmt.Errorf("unmarshal lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	c, err := catalog.New(version, lessons)
	if err != nil {
		return nil, fmt.Errorf("rebuild catalog %s: %w", version, err)
	}
	return c, nil
}

func (r *catalogRepo) Versions(ctx context.Context) ([]string, error) {
	q, args := builder().Select("version").From(entsql.Table("catalog_versions")).Query()
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog versions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	semver.Sort(out)
	return out, nil
}
