package main

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/suppliers/internal/config"
	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/JonMunkholm/suppliers/internal/logging"
	"github.com/JonMunkholm/suppliers/internal/store"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	cfg     *config.Config
	store   core.Store
	service *core.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "supplierctl",
		Short: "Manage the supplier directory from the command line",
		Long: `supplierctl imports supplier CSV files, exports the directory as CSV or
XLSX, and lists suppliers. The store is chosen by STORE_DRIVER and the
same environment variables the server reads; a .env file is loaded if present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				slog.Debug("no .env file found", "error", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			st, err := store.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}

			core.ImportTimeout = cfg.Upload.Timeout
			a.cfg = cfg
			a.store = st
			a.service = core.NewService(st, core.ServiceOptions{
				MaxUploadSize:        cfg.Upload.MaxFileSize,
				MaxConcurrentImports: cfg.Upload.MaxConcurrent,
				ImportWait:           cfg.Upload.MaxWaitTime,
			})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close(cmd.Context())
		},
	}

	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newCheckCmd(a))
	return root
}
