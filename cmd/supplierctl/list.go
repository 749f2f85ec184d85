package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// filterFlags are the listing flags shared by list and export.
type filterFlags struct {
	search     string
	city       string
	categories []string
	sort       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive text in name, description or city")
	cmd.Flags().StringVar(&f.city, "city", "", "Exact city")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Category, repeatable or comma-separated (any match)")
	cmd.Flags().StringVar(&f.sort, "sort", string(core.DefaultSort), "name-asc, name-desc, newest, oldest, city-asc or city-desc")
}

func (f *filterFlags) build() (core.SupplierFilter, core.SortOption) {
	var cats []string
	for _, c := range f.categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	return core.SupplierFilter{
		Search:     strings.TrimSpace(f.search),
		City:       strings.TrimSpace(f.city),
		Categories: cats,
	}, core.ParseSortOption(f.sort)
}

type listOptions struct {
	filter filterFlags
	page   int
	limit  int
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, a, opts)
		},
	}

	opts.filter.register(cmd)
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&opts.limit, "limit", core.MaxPageLimit, "Suppliers per page")
	return cmd
}

func runList(cmd *cobra.Command, a *app, opts listOptions) error {
	filter, sortOpt := opts.filter.build()
	page, err := a.service.ListSuppliers(cmd.Context(), filter, sortOpt, core.PageRequest{Page: opts.page, Limit: opts.limit})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCITY\tCATEGORIES\tSLUG")
	for _, s := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.City, strings.Join(s.Categories, ", "), s.Slug)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d-%d of %d (page %d of %d)\n",
		page.Start, page.End, page.TotalItems, page.Page, page.TotalPages)
	return nil
}
