package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/neurobreath/placement/internal/catalog"
	"github.com/neurobreath/placement/internal/report"
)

// openInput opens the named file, or stdin for "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func wantJSON(cmd *cobra.Command) bool {
	j, _ := cmd.Flags().GetBool("json")
	return j
}

// newRenderer styles output only when stdout is a terminal and NO_COLOR is
// unset.
func newRenderer(cmd *cobra.Command) *report.Renderer {
	out := cmd.OutOrStdout()
	theme := report.PlainTheme()
	width := report.DefaultWidth

	if f, ok := out.(*os.File); ok && term.IsTerminal(f.Fd()) {
		if os.Getenv("NO_COLOR") == "" {
			theme = report.ColorTheme()
		}
		if w, _, err := term.GetSize(f.Fd()); err == nil && w < 100 {
			width = w
		}
	}
	return report.New(out, theme, width)
}

// emit prints v as JSON with --json, otherwise through render.
func emit(cmd *cobra.Command, v any, render func(*report.Renderer) error) error {
	if wantJSON(cmd) {
		return report.JSON(cmd.OutOrStdout(), v)
	}
	return render(newRenderer(cmd))
}

// loadCatalog resolves the lesson catalog: a --catalog file, then a stored
// --catalog-version, then catalog.path from the config, then the built-in
// catalog.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return catalog.LoadFile(p)
	}
	if ver, _ := cmd.Flags().GetString("catalog-version"); ver != "" {
		s, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Catalogs().Load(cmd.Context(), ver)
	}
	if cfg != nil && cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	c := catalog.Default()
	slog.Debug("using built-in catalog", "version", c.Version(), "lessons", c.Len())
	return c, nil
}

func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "YAML lesson catalog file (default: built-in catalog)")
	cmd.Flags().String("catalog-version", "", "Load a catalog version previously seeded into the database")
}
