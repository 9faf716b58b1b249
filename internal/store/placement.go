package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/neurobreath/placement/internal/placement"
)

// placementRepo implements PlacementRepo.
type placementRepo struct {
	s *Store
}

func (r *placementRepo) Save(ctx context.Context, learnerID, assessmentID string, res placement.Result) (*PlacementRecord, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal placement: %w", err)
	}

	rec := &PlacementRecord{
		ID:           r.s.newID(),
		LearnerID:    learnerID,
		AssessmentID: assessmentID,
		CreatedAt:    r.s.now().UTC(),
		Result:       res,
	}
	var assessment any
	if assessmentID != "" {
		assessment = assessmentID
	}
	q, args := builder().Insert("placements").
		Columns("id", "learner_id", "assessment_id", "created_at", "level", "learner_group", "confidence", "method", "result").
		Values(rec.ID, learnerID, assessment, formatTime(rec.CreatedAt),
			res.Level.String(), string(res.Group), res.Confidence.String(), string(res.Method), string(raw)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("save placement: %w", err)
	}
	slog.Debug("placement saved", "learner", learnerID, "id", rec.ID, "level", res.Level)
	return rec, nil
}

func (r *placementRepo) Latest(ctx context.Context, learnerID string) (*PlacementRecord, error) {
	recs, err := r.History(ctx, learnerID, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *placementRepo) History(ctx context.Context, learnerID string, limit int) ([]PlacementRecord, error) {
	sel := builder().Select("id", "learner_id", "assessment_id", "created_at", "result").
		From(entsql.Table("placements")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var out []PlacementRecord
	for rows.Next() {
		var (
			rec          PlacementRecord
			assessment   sql.NullString
			created, raw string
		)
		if err := rows.Scan(&rec.ID, &rec.LearnerID, &assessment, &created, &raw); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		rec.AssessmentID = assessment.String
		if rec.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parse placement time: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshal placement: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}
	return out, nil
}
