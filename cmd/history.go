package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history <learner-id>",
	Short: "Show a learner's stored placements, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.Placements().History(cmd.Context(), args[0], limit)
		if err != nil {
			return fmt.Errorf("query placements: %w", err)
		}

		items := make([]report.HistoryItem, len(recs))
		for i, rec := range recs {
			items[i] = report.HistoryItem{At: rec.CreatedAt.Local(), Result: rec.Result}
		}
		return emit(cmd, recs, func(r *report.Renderer) error { return r.History(args[0], items) })
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of placements to show (0 for all)")
}
