package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/JonMunkholm/suppliers/internal/export"
)

type exportOptions struct {
	format string
	output string
	filter filterFlags
}

func newExportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export suppliers as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout for csv, suppliers.xlsx for xlsx)")
	opts.filter.register(cmd)
	return cmd
}

func runExport(cmd *cobra.Command, a *app, opts exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	filter, sortOpt := opts.filter.build()
	suppliers, err := a.store.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("list suppliers: %w", err)
	}
	core.SortSuppliers(suppliers, sortOpt)

	output := opts.output
	if output == "" && format == export.FormatXLSX {
		output = format.FileName()
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, suppliers); err != nil {
		return err
	}
	if output != "" && output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d suppliers to %s\n", len(suppliers), output)
	}
	return nil
}
