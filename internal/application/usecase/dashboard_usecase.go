package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DashboardRepos fuentes de los contadores del tablero (consultas read-only).
type DashboardRepos struct {
	Materials repository.MaterialRepository
	Locations repository.LocationRepository
	Invoices  repository.InvoiceRepository
	Receipts  repository.GoodsReceiptRepository
	Issues    repository.GoodsIssueRepository
	Transfers repository.StockTransferRepository
	Movements repository.StockMovementRepository
}

// DashboardUseCase resumen de conteos del sistema.
type DashboardUseCase struct {
	repos DashboardRepos
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos DashboardRepos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos}
}

// GetStats lanza los conteos en paralelo; el primer error cancela el resto.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var out dto.DashboardStatsResponse
	g, gctx := errgroup.WithContext(ctx)

	count := func(label string, dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: %s: %w", label, err)
			}
			*dst = n
			return nil
		})
	}
	count("materiales", &out.TotalMaterials, uc.repos.Materials.Count)
	count("ubicaciones", &out.TotalLocations, uc.repos.Locations.Count)
	count("facturas pendientes", &out.PendingInvoices, func(ctx context.Context) (int, error) {
		return uc.repos.Invoices.CountByStatus(ctx, entity.InvoiceStatusPending)
	})
	count("entradas", &out.TotalReceipts, uc.repos.Receipts.Count)
	count("salidas", &out.TotalIssues, uc.repos.Issues.Count)
	count("traslados", &out.TotalTransfers, uc.repos.Transfers.Count)
	count("movimientos", &out.TotalMovements, uc.repos.Movements.Count)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
