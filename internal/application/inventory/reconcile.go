package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ReconcileUseCase compara cada saldo con la suma de su libro.
type ReconcileUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	stock     repository.CurrentStockRepository
	resolver  ReferenceResolver
	log       *logger.Logger
	now       func() time.Time
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	txRunner TxRunner,
	movements repository.StockMovementRepository,
	stock repository.CurrentStockRepository,
	resolver ReferenceResolver,
	log *logger.Logger,
) *ReconcileUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileUseCase{
		txRunner:  txRunner,
		movements: movements,
		stock:     stock,
		resolver:  resolver,
		log:       log,
		now:       time.Now,
	}
}

// Check devuelve los pares cuyo saldo difiere de la suma del libro, ordenados por clave.
// Un par con asientos y sin fila de saldo cuenta como saldo cero.
func (uc *ReconcileUseCase) Check(ctx context.Context) ([]dto.StockDriftResponse, error) {
	return uc.check(ctx, uc.movements, uc.stock)
}

func (uc *ReconcileUseCase) check(ctx context.Context, movRepo repository.StockMovementRepository, stockRepo repository.CurrentStockRepository) ([]dto.StockDriftResponse, error) {
	sums, err := movRepo.SumByKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("sumar libro: %w", err)
	}
	rows, err := stockRepo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listar saldos: %w", err)
	}
	balances := make(map[entity.StockKey]decimal.Decimal, len(rows))
	for _, r := range rows {
		balances[r.Key()] = r.CurrentQuantity
	}
	keys := make([]entity.StockKey, 0, len(balances)+len(sums))
	for k := range balances {
		keys = append(keys, k)
	}
	for k := range sums {
		if _, ok := balances[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	drift := make([]dto.StockDriftResponse, 0)
	for _, k := range keys {
		bal, ledger := balances[k], sums[k]
		if bal.Equal(ledger) {
			continue
		}
		drift = append(drift, dto.StockDriftResponse{
			MaterialID: k.MaterialID,
			LocationID: k.LocationID,
			Balance:    bal,
			Ledger:     ledger,
			Difference: ledger.Sub(bal),
		})
	}
	for _, d := range drift {
		uc.log.Warn().
			Str("material_id", d.MaterialID).
			Str("location_id", d.LocationID).
			Str("balance", d.Balance.String()).
			Str("ledger", d.Ledger.String()).
			Msg("saldo descuadrado respecto al libro")
	}
	return drift, nil
}

// Fix recalcula dentro de una transacción y lleva cada saldo descuadrado al valor del libro
// con un incremento por la diferencia. Es una acción explícita del operador.
func (uc *ReconcileUseCase) Fix(ctx context.Context) ([]dto.StockDriftResponse, error) {
	var fixed []dto.StockDriftResponse
	err := uc.txRunner.Run(ctx, func(repos LedgerRepos) error {
		drift, err := uc.check(ctx, repos.Movements, repos.Stock)
		if err != nil {
			return err
		}
		for _, d := range drift {
			seed, err := uc.seed(ctx, d)
			if err != nil {
				return err
			}
			if _, err := repos.Stock.ApplyDelta(ctx, seed, d.Difference); err != nil {
				return fmt.Errorf("corregir saldo %s/%s: %w", d.MaterialID, d.LocationID, err)
			}
		}
		fixed = drift
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("rows", len(fixed)).Msg("saldos conciliados con el libro")
	return fixed, nil
}

func (uc *ReconcileUseCase) seed(ctx context.Context, d dto.StockDriftResponse) (*entity.CurrentStock, error) {
	seed := &entity.CurrentStock{
		ID:              uuid.New().String(),
		MaterialID:      d.MaterialID,
		LocationID:      d.LocationID,
		CurrentQuantity: d.Difference,
		LastUpdated:     uc.now(),
	}
	m, err := uc.resolver.ResolveMaterial(ctx, d.MaterialID)
	if err != nil {
		return nil, err
	}
	l, err := uc.resolver.ResolveLocation(ctx, d.LocationID)
	if err != nil {
		return nil, err
	}
	seed.MaterialCode = m.Code
	seed.MaterialDescription = m.Description
	seed.UnitOfMeasure = m.UnitOfMeasure
	seed.PlantCode = l.PlantCode
	seed.StorageLocation = l.StorageLocation
	return seed, nil
}
