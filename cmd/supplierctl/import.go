package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/suppliers/internal/config"
	"github.com/JonMunkholm/suppliers/internal/core"
)

type importOptions struct {
	dryRun bool
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import suppliers from a CSV file",
		Long: `Parse a supplier CSV with the same rules as the admin upload, print what
was accepted and skipped, then store the suppliers. With --dry-run nothing
is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and report only, do not store")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, path string, opts importOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	preview, err := a.service.PreviewImport(cmd.Context(), filepath.Base(path), "text/csv", data)
	if err != nil {
		return errors.New(core.FormatUserError(err))
	}

	out := cmd.OutOrStdout()
	st := preview.Stats
	fmt.Fprintf(out, "%s: %d data rows, %d accepted, %d skipped (short), %d skipped (no name)\n",
		preview.FileName, st.DataRows, st.Accepted, st.SkippedShort, st.SkippedNoName)
	for _, ca := range core.ColumnAliases {
		if idx := st.Columns[ca.Field]; idx != core.Unresolved {
			fmt.Fprintf(out, "  %-12s <- %q\n", ca.Field, st.Headers[idx])
		}
	}

	if opts.dryRun {
		fmt.Fprintln(out, "dry run, nothing stored")
		return nil
	}
	if a.cfg.Store.Driver == config.DriverMemory {
		slog.Warn("memory store selected, imported suppliers are lost when the command exits")
	}

	inserted, err := a.service.ConfirmImport(cmd.Context(), preview.Records)
	if err != nil {
		return errors.New(core.FormatUserError(err))
	}
	fmt.Fprintf(out, "stored %d suppliers\n", len(inserted))
	return nil
}
