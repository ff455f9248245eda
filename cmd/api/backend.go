package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// backend repositorios y runner de transacciones del driver elegido (STORAGE_DRIVER).
type backend struct {
	tx             inventory.TxRunner
	materials      repository.MaterialRepository
	locations      repository.LocationRepository
	purchaseOrders repository.PurchaseOrderRepository
	invoices       repository.InvoiceRepository
	receipts       repository.GoodsReceiptRepository
	issues         repository.GoodsIssueRepository
	transfers      repository.StockTransferRepository
	movements      repository.StockMovementRepository
	stock          repository.CurrentStockRepository
	resolver       inventory.ReferenceResolver
	close          func()
}

func openBackend(ctx context.Context, rt *cliEnv) (*backend, error) {
	var b *backend
	switch rt.cfg.Storage.Driver {
	case config.StorageDriverMemory:
		rt.log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		b = &backend{
			tx:             store,
			materials:      store.Materials(),
			locations:      store.Locations(),
			purchaseOrders: store.PurchaseOrders(),
			invoices:       store.Invoices(),
			receipts:       store.Receipts(),
			issues:         store.Issues(),
			transfers:      store.Transfers(),
			movements:      store.Movements(),
			stock:          store.Stock(),
			close:          func() {},
		}
	default:
		if rt.cfg.DB.AutoMigrate {
			if err := postgres.Migrate(rt.cfg.DB.ConnectionString(), postgres.MigrateUp, rt.log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, rt.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		ledger := postgres.Repos(pool)
		b = &backend{
			tx:             postgres.NewTxRunner(pool),
			materials:      postgres.NewMaterialRepository(pool),
			locations:      postgres.NewLocationRepository(pool),
			purchaseOrders: postgres.NewPurchaseOrderRepository(pool),
			invoices:       postgres.NewInvoiceRepository(pool),
			receipts:       ledger.Receipts,
			issues:         ledger.Issues,
			transfers:      ledger.Transfers,
			movements:      ledger.Movements,
			stock:          ledger.Stock,
			close:          pool.Close,
		}
	}

	b.resolver = inventory.NewRepositoryResolver(b.materials, b.locations)
	if rt.cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, rt.cfg.Redis)
		if err != nil {
			rt.log.Warn().Err(err).Str("addr", rt.cfg.Redis.Addr).Msg("redis no disponible, sin caché de referencias")
		} else {
			b.resolver = cache.NewReferenceCache(client, b.resolver, rt.cfg.Redis.TTL, rt.log.Component("reference-cache"))
			dbClose := b.close
			b.close = func() {
				_ = client.Close()
				dbClose()
			}
		}
	}
	return b, nil
}

func (b *backend) reconciler(rt *cliEnv) *inventory.ReconcileUseCase {
	return inventory.NewReconcileUseCase(b.tx, b.movements, b.stock, b.resolver, rt.log.Component("reconcile"))
}

func (b *backend) importer(rt *cliEnv) *usecase.ImportUseCase {
	limit := rt.cfg.Ledger.HistoryLimit
	return usecase.NewImportUseCase(
		usecase.NewMaterialUseCase(b.materials, limit),
		usecase.NewLocationUseCase(b.locations, limit),
		rt.log.Component("seed"),
	)
}
