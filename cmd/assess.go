package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/intake"
	"github.com/neurobreath/placement/internal/profile"
	"github.com/neurobreath/placement/internal/report"
	"github.com/neurobreath/placement/internal/store"
)

var errNoLearner = errors.New("--save requires learner_id in the submission")

var assessCmd = &cobra.Command{
	Use:   "assess <file>",
	Short: "Score an assessment submission into a reading profile",
	Long: `Score an assessment submission (JSON, "-" for stdin) into a reading profile
with per-domain scores, an overall band and a confidence rating.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, p, err := readSubmission(cmd, args[0])
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			if _, err := saveAssessment(cmd, s, sub, p); err != nil {
				return err
			}
		}

		return emit(cmd, p, func(r *report.Renderer) error { return r.Profile(p) })
	},
}

func init() {
	assessCmd.Flags().Bool("save", false, "Store the profile for the submission's learner_id")
}

// readSubmission decodes a full submission and scores it.
func readSubmission(cmd *cobra.Command, name string) (*intake.Submission, profile.Profile, error) {
	in, err := openInput(cmd, name)
	if err != nil {
		return nil, profile.Profile{}, err
	}
	defer in.Close()

	sub, err := intake.DecodeSubmission(in)
	if err != nil {
		return nil, profile.Profile{}, err
	}
	p := profile.Build(sub.Assessment())
	slog.Debug("assessment scored", "learner", sub.LearnerID, "band", p.OverallBand, "confidence", p.Confidence)
	return sub, p, nil
}

func saveAssessment(cmd *cobra.Command, s *store.Store, sub *intake.Submission, p profile.Profile) (*store.AssessmentRecord, error) {
	if sub.LearnerID == "" {
		return nil, errNoLearner
	}
	rec, err := s.Assessments().Save(cmd.Context(), sub.LearnerID, p)
	if err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	slog.Info("assessment saved", "learner", sub.LearnerID, "id", rec.ID)
	return rec, nil
}
