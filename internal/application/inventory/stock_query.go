package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockQueryUseCase superficie de consulta: saldos actuales e historial del libro.
type StockQueryUseCase struct {
	stock        repository.CurrentStockRepository
	movements    repository.StockMovementRepository
	historyLimit int
}

// NewStockQueryUseCase construye el caso de uso. historyLimit es el tope de filas por consulta.
func NewStockQueryUseCase(stock repository.CurrentStockRepository, movements repository.StockMovementRepository, historyLimit int) *StockQueryUseCase {
	if historyLimit <= 0 {
		historyLimit = 1000
	}
	return &StockQueryUseCase{stock: stock, movements: movements, historyLimit: historyLimit}
}

// CurrentBalances instantánea de todas las filas de saldo (sin orden garantizado).
func (uc *StockQueryUseCase) CurrentBalances(ctx context.Context) ([]dto.CurrentStockResponse, error) {
	list, err := uc.stock.List(ctx, uc.historyLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrentStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToCurrentStockResponse(s))
	}
	return out, nil
}

// Balance saldo de un par; domain.ErrNotFound si el par nunca tuvo movimientos.
func (uc *StockQueryUseCase) Balance(ctx context.Context, materialID, locationID string) (*dto.CurrentStockResponse, error) {
	s, err := uc.stock.Get(ctx, materialID, locationID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := ToCurrentStockResponse(s)
	return &out, nil
}

// MovementHistory asientos del más reciente al más antiguo. El límite se acota a historyLimit.
func (uc *StockQueryUseCase) MovementHistory(ctx context.Context, q dto.MovementHistoryQuery) ([]dto.StockMovementResponse, error) {
	limit := q.Limit
	if limit <= 0 || limit > uc.historyLimit {
		limit = uc.historyLimit
	}
	list, err := uc.movements.List(ctx, repository.MovementFilter{
		MaterialID:     q.MaterialID,
		LocationID:     q.LocationID,
		DocumentNumber: q.DocumentNumber,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(list), nil
}

// MovementTypes tabla de políticas de tipos de movimiento.
func (uc *StockQueryUseCase) MovementTypes() []dto.MovementTypeResponse {
	types := domaininv.Types()
	out := make([]dto.MovementTypeResponse, 0, len(types))
	for _, p := range types {
		out = append(out, dto.MovementTypeResponse{Code: string(p.Type), Label: p.Label, Direction: string(p.Direction)})
	}
	return out
}
