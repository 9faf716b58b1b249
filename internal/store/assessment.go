package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/neurobreath/placement/internal/profile"
)

// assessmentRepo implements AssessmentRepo.
type assessmentRepo struct {
	s *Store
}

func (r *assessmentRepo) Save(ctx context.Context, learnerID string, p profile.Profile) (*AssessmentRecord, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	rec := &AssessmentRecord{
		ID:        r.s.newID(),
		LearnerID: learnerID,
		CreatedAt: r.s.now().UTC(),
		Profile:   p,
	}
	q, args := builder().Insert("assessments").
		Columns("id", "learner_id", "created_at", "overall_band", "confidence", "profile").
		Values(rec.ID, learnerID, formatTime(rec.CreatedAt), p.OverallBand.String(), p.Confidence.String(), string(raw)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	slog.Debug("assessment saved", "learner", learnerID, "id", rec.ID, "band", p.OverallBand)
	return rec, nil
}

func (r *assessmentRepo) Latest(ctx context.Context, learnerID string) (*AssessmentRecord, error) {
	q, args := builder().Select("id", "learner_id", "created_at", "profile").
		From(entsql.Table("assessments")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid")).
		Limit(1).
		Query()

	var (
		rec              AssessmentRecord
		created, profRaw string
	)
	err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&rec.ID, &rec.LearnerID, &created, &profRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest assessment: %w", err)
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse assessment time: %w", err)
	}
	if err := json.Unmarshal([]byte(profRaw), &rec.Profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &rec, nil
}
