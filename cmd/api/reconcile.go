package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

func newReconcileCmd(rt *cliEnv) *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compara cada saldo con la suma de su libro de movimientos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := openBackend(ctx, rt)
			if err != nil {
				return err
			}
			defer b.close()

			uc := b.reconciler(rt)
			var drift []dto.StockDriftResponse
			if fix {
				drift, err = uc.Fix(ctx)
			} else {
				drift, err = uc.Check(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(drift) == 0 {
				fmt.Fprintln(out, "sin descuadres")
				return nil
			}
			for _, d := range drift {
				fmt.Fprintf(out, "%s @ %s  saldo=%s  libro=%s  diferencia=%s\n",
					d.MaterialID, d.LocationID, d.Balance, d.Ledger, d.Difference)
			}
			if fix {
				fmt.Fprintf(out, "%d saldo(s) corregido(s)\n", len(drift))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Corrige los saldos para que igualen al libro")
	return cmd
}
