package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/level"
	"github.com/neurobreath/placement/internal/report"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and seed lesson catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog lessons by level",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		var only *level.Level
		if s, _ := cmd.Flags().GetString("level"); s != "" {
			l, err := level.Parse(s)
			if err != nil {
				return err
			}
			only = &l
		}

		if wantJSON(cmd) {
			lessons := c.Lessons()
			if only != nil {
				lessons = c.AtLevel(*only)
			}
			return report.JSON(cmd.OutOrStdout(), struct {
				Version string           `json:"version"`
				Lessons []catalog.Lesson `json:"lessons"`
			}{c.Version(), lessons})
		}
		return newRenderer(cmd).Catalog(c, only)
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML catalog and report every problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: catalog %s is valid (%d lessons across %d levels)\n",
			args[0], c.Version(), c.Len(), len(c.Levels()))
		return nil
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Store a catalog version in the database (default: built-in catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := catalog.Default()
		if len(args) == 1 {
			var err error
			if c, err = catalog.LoadFile(args[0]); err != nil {
				return err
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		seeded, err := s.Catalogs().Seed(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded catalog %s (%d lessons).\n", c.Version(), c.Len())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s is already stored.\n", c.Version())
		}
		return nil
	},
}

var catalogVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List catalog versions stored in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		versions, err := s.Catalogs().Versions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list catalog versions: %w", err)
		}
		if wantJSON(cmd) {
			return report.JSON(cmd.OutOrStdout(), versions)
		}
		if len(versions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No catalogs stored. Run `nbplace catalog seed`.")
			return nil
		}
		for _, ver := range versions {
			fmt.Fprintln(cmd.OutOrStdout(), ver)
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the resolved catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return catalog.WriteYAML(cmd.OutOrStdout(), c)
	},
}

func init() {
	addCatalogFlags(catalogListCmd)
	catalogListCmd.Flags().String("level", "", "Only list one level (e.g. NB-L3 or 3)")
	addCatalogFlags(catalogExportCmd)

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogVersionsCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
