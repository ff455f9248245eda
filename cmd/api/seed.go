package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

func newSeedCmd(rt *cliEnv) *cobra.Command {
	var (
		materialsFile string
		locationsFile string
		latin1        bool
		separator     string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga materiales y ubicaciones desde CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if materialsFile == "" && locationsFile == "" {
				return fmt.Errorf("indique --materials y/o --locations")
			}
			opts := usecase.ImportOptions{Latin1: latin1}
			if separator != "" {
				opts.Comma = []rune(separator)[0]
			}

			ctx := cmd.Context()
			b, err := openBackend(ctx, rt)
			if err != nil {
				return err
			}
			defer b.close()
			importer := b.importer(rt)
			out := cmd.OutOrStdout()

			if locationsFile != "" {
				if err := importFile(ctx, out, "ubicaciones", locationsFile, opts, importer.ImportLocations); err != nil {
					return err
				}
			}
			if materialsFile != "" {
				if err := importFile(ctx, out, "materiales", materialsFile, opts, importer.ImportMaterials); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&materialsFile, "materials", "", "CSV de materiales")
	cmd.Flags().StringVar(&locationsFile, "locations", "", "CSV de ubicaciones")
	cmd.Flags().BoolVar(&latin1, "latin1", false, "Los archivos vienen en ISO-8859-1")
	cmd.Flags().StringVar(&separator, "separator", "", "Separador de columnas (por defecto ',')")
	return cmd
}

type importFunc func(ctx context.Context, r io.Reader, opts usecase.ImportOptions) (*usecase.ImportReport, error)

func importFile(ctx context.Context, out io.Writer, label, path string, opts usecase.ImportOptions, fn importFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	report, err := fn(ctx, f, opts)
	if err != nil {
		return fmt.Errorf("importar %s: %w", label, err)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  [aviso] %s\n", w)
	}
	fmt.Fprintf(out, "%s: %d filas, %d creadas, %d omitidas\n", label, report.Rows, report.Created, report.Skipped)
	return nil
}
