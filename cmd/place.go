package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/intake"
	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/placement"
	"github.com/neurobreath/placement/internal/profile"
	"github.com/neurobreath/placement/internal/report"
)

var placeCmd = &cobra.Command{
	Use:   "place <file>",
	Short: "Place a learner on the NB-L0..NB-L8 scale",
	Long: `Place a learner from an assessment submission. With --quick the file is a
quick check (a few 0-100 scores or a self-reported band) and the placement
always has low confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := placeFromFile(cmd, args[0])
		if err != nil {
			return err
		}
		if err := savePlaced(cmd, pl); err != nil {
			return err
		}

		return emit(cmd, pl.view(), func(r *report.Renderer) error {
			if pl.profile != nil {
				if err := r.Profile(*pl.profile); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return r.Placement(pl.result)
		})
	},
}

func init() {
	addPlacementFlags(placeCmd)
}

func addPlacementFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("quick", false, "Input is a quick check rather than a full assessment")
	cmd.Flags().Bool("save", false, "Store the result for the submission's learner_id")
	cmd.Flags().Bool("history", false, "Use the learner's last stored placement as the previous level")
}

// placed is a placement together with the evidence it came from.
type placed struct {
	learnerID string
	sub       *intake.Submission // nil for quick placements
	profile   *profile.Profile
	result    placement.Result
}

// placedView is the JSON form of a placement.
type placedView struct {
	LearnerID string           `json:"learner_id,omitempty"`
	Profile   *profile.Profile `json:"profile,omitempty"`
	Placement placement.Result `json:"placement"`
}

func (p *placed) view() placedView {
	return placedView{LearnerID: p.learnerID, Profile: p.profile, Placement: p.result}
}

func placeFromFile(cmd *cobra.Command, name string) (*placed, error) {
	if quick, _ := cmd.Flags().GetBool("quick"); quick {
		in, err := openInput(cmd, name)
		if err != nil {
			return nil, err
		}
		defer in.Close()

		q, err := intake.DecodeQuickCheck(in)
		if err != nil {
			return nil, err
		}
		qi := q.Input()
		if qi.Previous == nil {
			if qi.Previous, err = previousFromHistory(cmd, q.LearnerID); err != nil {
				return nil, err
			}
		}
		res := placement.QuickPlace(qi)
		slog.Debug("quick placement", "learner", q.LearnerID, "level", res.Level)
		return &placed{learnerID: q.LearnerID, result: res}, nil
	}

	sub, p, err := readSubmission(cmd, name)
	if err != nil {
		return nil, err
	}
	pi := sub.PlacementInput(p)
	if pi.Previous == nil {
		if pi.Previous, err = previousFromHistory(cmd, sub.LearnerID); err != nil {
			return nil, err
		}
	}
	res := placement.Place(pi)
	slog.Debug("placement", "learner", sub.LearnerID, "level", res.Level, "confidence", res.Confidence)
	return &placed{learnerID: sub.LearnerID, sub: sub, profile: &p, result: res}, nil
}

// previousFromHistory looks up the learner's last stored level when
// --history is set.
func previousFromHistory(cmd *cobra.Command, learnerID string) (*level.Level, error) {
	if use, _ := cmd.Flags().GetBool("history"); !use || learnerID == "" {
		return nil, nil
	}
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rec, err := s.Placements().Latest(cmd.Context(), learnerID)
	if err != nil {
		return nil, fmt.Errorf("load previous placement: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	l := rec.Result.Level
	return &l, nil
}

// savePlaced stores the assessment (for full placements) and the placement
// when --save is set.
func savePlaced(cmd *cobra.Command, pl *placed) error {
	if save, _ := cmd.Flags().GetBool("save"); !save {
		return nil
	}
	if pl.learnerID == "" {
		return errNoLearner
	}
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var assessmentID string
	if pl.sub != nil {
		rec, err := saveAssessment(cmd, s, pl.sub, *pl.profile)
		if err != nil {
			return err
		}
		assessmentID = rec.ID
	}
	rec, err := s.Placements().Save(cmd.Context(), pl.learnerID, assessmentID, pl.result)
	if err != nil {
		return fmt.Errorf("save placement: %w", err)
	}
	slog.Info("placement saved", "learner", pl.learnerID, "id", rec.ID, "level", pl.result.Level)
	return nil
}
