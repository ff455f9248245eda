package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// cliEnv configuración y logger compartidos por los subcomandos.
type cliEnv struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliEnv{}
	root := &cobra.Command{
		Use:           "stock-ledger",
		Short:         "Libro de movimientos de stock con saldos por material y ubicación",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt)
		},
	}
	root.AddCommand(
		newServeCmd(rt),
		newMigrateCmd(rt),
		newReconcileCmd(rt),
		newSeedCmd(rt),
	)
	return root
}
