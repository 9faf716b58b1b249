package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neurobreath/placement/internal/config"
	"github.com/neurobreath/placement/internal/store"
)

var (
	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nbplace",
	Short: "Reading level placement and practice planning",
	Long: `nbplace scores reading assessments into a multi-domain profile, places the
learner on the NB-L0..NB-L8 training scale and builds a weekly practice plan.

Results are training indices only. They are not a diagnosis, a grade level
or a reading age.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: $HOME/.config/nbplace/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides NBPLACE_DB env var)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.Bool("json", false, "Print results as JSON instead of a styled report")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))

	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(v, file)
	if err != nil {
		return err
	}
	if err := config.SetupLogging(cmd.ErrOrStderr(), c.Logging); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NBPLACE_DB env var, then database.path from the config, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("NBPLACE_DB") == "" && cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the resolved database. Callers close it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
