package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the configured store is reachable and summarize its contents",
		Long: `check pings the store the server would use and prints the supplier,
category and city counts. It exits non-zero when the store cannot be reached,
so it can gate a deploy or serve as a container health check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := a.store.Ping(ctx); err != nil {
				return fmt.Errorf("store %s unreachable: %w", a.cfg.Store.Driver, err)
			}

			stats, err := a.service.Stats(ctx)
			if err != nil {
				return fmt.Errorf("read stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store:      %s ok\n", a.cfg.Store.Driver)
			fmt.Fprintf(out, "suppliers:  %d\n", stats.TotalSuppliers)
			fmt.Fprintf(out, "categories: %d\n", stats.Categories)
			fmt.Fprintf(out, "cities:     %d\n", stats.Cities)
			if !a.cfg.AdminEnabled() {
				fmt.Fprintln(out, "warning: admin API disabled (set ADMIN_PASSWORD or API_KEYS)")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to wait for the store")
	return cmd
}
