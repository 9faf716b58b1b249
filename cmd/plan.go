package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/plan"
	"github.com/neurobreath/placement/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Place a learner and build a weekly practice plan",
	Long: `Place a learner from a submission and schedule lessons from the catalog into a
multi-week plan. Minutes per day and days per week default to the learner
group's practice settings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := placeFromFile(cmd, args[0])
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		req := planRequest(cmd)
		req.Placement = pl.result
		p, err := plan.Generate(cat, req)
		if err != nil {
			return err
		}
		slog.Debug("plan generated", "learner", pl.learnerID, "weeks", p.TotalWeeks, "entries", len(p.Entries))

		if err := savePlaced(cmd, pl); err != nil {
			return err
		}
		return emit(cmd, p, func(r *report.Renderer) error { return r.Plan(p) })
	},
}

func init() {
	addPlacementFlags(planCmd)
	addCatalogFlags(planCmd)
	planCmd.Flags().Int("minutes", 0, "Minutes per day (default: learner group setting)")
	planCmd.Flags().Int("weeks", 0, "Plan length in weeks (default: plan.weeks)")
	planCmd.Flags().Int("days", 0, "Practice days per week, at most 7 (default: learner group setting)")
	planCmd.Flags().Int("max-weeks-per-level", 0, "Advance after this many weeks at one level (default: plan.max_weeks_per_level)")
}

// planRequest merges plan settings from the config with explicit flags.
func planRequest(cmd *cobra.Command) plan.Request {
	req := plan.Request{GeneratedAt: time.Now().UTC()}
	if cfg != nil {
		req.MinutesPerDay = cfg.Plan.MinutesPerDay
		req.Weeks = cfg.Plan.Weeks
		req.DaysPerWeek = cfg.Plan.DaysPerWeek
		req.MaxWeeksPerLevel = cfg.Plan.MaxWeeksPerLevel
	}

	flags := cmd.Flags()
	if flags.Changed("minutes") {
		req.MinutesPerDay, _ = flags.GetInt("minutes")
	}
	if flags.Changed("weeks") {
		req.Weeks, _ = flags.GetInt("weeks")
	}
	if flags.Changed("days") {
		req.DaysPerWeek, _ = flags.GetInt("days")
	}
	if flags.Changed("max-weeks-per-level") {
		req.MaxWeeksPerLevel, _ = flags.GetInt("max-weeks-per-level")
	}
	return req
}
