package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/catalog"
)

// version is stamped by release builds with
// -ldflags "-X github.com/neurobreath/placement/cmd.version=vX.Y.Z".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nbplace version and the built-in catalog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nbplace %s (catalog %s)\n", version, catalog.DefaultVersion)
	},
}
