package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
)

func newServeCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt)
		},
	}
}

func runServe(ctx context.Context, rt *cliEnv) error {
	cfg, log := rt.cfg, rt.log
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	b, err := openBackend(ctx, rt)
	if err != nil {
		return err
	}
	defer b.close()

	limit := cfg.Ledger.HistoryLimit
	postUC := inventory.NewPostDocumentUseCase(
		b.tx, b.resolver,
		inventory.NewMovementRecorder(),
		inventory.NewBalanceAggregator(log.Component("balance")),
		log.Component("posting"),
		inventory.PostingOptions{MaxRetries: cfg.Ledger.MaxRetries, RetryBackoff: cfg.Ledger.RetryBackoff},
	)
	slips := infrapdf.NewMarotoSlipGenerator(cfg.App.Name)
	documentsUC := inventory.NewDocumentQueryUseCase(b.receipts, b.issues, b.transfers, b.resolver, slips, limit)
	stockUC := inventory.NewStockQueryUseCase(b.stock, b.movements, limit)
	dashboardUC := usecase.NewDashboardUseCase(usecase.DashboardRepos{
		Materials: b.materials,
		Locations: b.locations,
		Invoices:  b.invoices,
		Receipts:  b.receipts,
		Issues:    b.issues,
		Transfers: b.transfers,
		Movements: b.movements,
	})

	// Chequeo periódico de descuadres saldo/libro; solo informa, no corrige.
	if cfg.Ledger.ReconcileCron != "" {
		reconcileUC := b.reconciler(rt)
		c := cron.New()
		if _, err := c.AddFunc(cfg.Ledger.ReconcileCron, func() {
			if _, err := reconcileUC.Check(context.Background()); err != nil {
				log.Error().Err(err).Msg("chequeo de descuadres")
			}
		}); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		log.Info().Str("schedule", cfg.Ledger.ReconcileCron).Msg("chequeo de descuadres programado")
	}

	app := httpRouter.NewApp(cfg.App.Name, log)
	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC:      usecase.NewLocationUseCase(b.locations, limit),
		MaterialUC:      usecase.NewMaterialUseCase(b.materials, limit),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(b.purchaseOrders, limit),
		InvoiceUC:       usecase.NewInvoiceUseCase(b.invoices, cfg.Storage.UploadDir, limit),
		DashboardUC:     dashboardUC,
		PostDocument:    postUC,
		Documents:       documentsUC,
		StockQuery:      stockUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
