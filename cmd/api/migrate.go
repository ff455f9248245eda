package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
)

func newMigrateCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Aplica o revierte las migraciones de PostgreSQL",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := args[0]
			if direction != postgres.MigrateUp && direction != postgres.MigrateDown {
				return fmt.Errorf("dirección inválida %q: use up o down", direction)
			}
			return postgres.Migrate(rt.cfg.DB.ConnectionString(), direction, rt.log)
		},
	}
}
