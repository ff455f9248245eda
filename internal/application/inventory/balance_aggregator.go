package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// BalanceAggregator aplica la cantidad firmada de un asiento al saldo de su par (material, ubicación).
// Es puramente aditivo: no vuelve a derivar la dirección ni rechaza saldos negativos.
// Aplicar dos veces el mismo asiento lo cuenta dos veces; el llamador garantiza una sola aplicación.
type BalanceAggregator struct {
	log *logger.Logger
	now func() time.Time
}

// NewBalanceAggregator construye el agregador.
func NewBalanceAggregator(log *logger.Logger) *BalanceAggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &BalanceAggregator{log: log, now: time.Now}
}

// Apply suma entry.Quantity al saldo mediante un incremento atómico por clave.
// Si la fila no existe se crea con los datos descriptivos de material y location en ese momento.
func (a *BalanceAggregator) Apply(
	ctx context.Context,
	stockRepo repository.CurrentStockRepository,
	entry *entity.StockMovement,
	material *entity.Material,
	location *entity.Location,
) (*entity.CurrentStock, error) {
	seed := &entity.CurrentStock{
		ID:              uuid.New().String(),
		MaterialID:      entry.MaterialID,
		MaterialCode:    entry.MaterialCode,
		LocationID:      entry.LocationID,
		PlantCode:       entry.PlantCode,
		StorageLocation: entry.StorageLocation,
		CurrentQuantity: entry.Quantity,
		UnitOfMeasure:   entry.UnitOfMeasure,
		LastUpdated:     a.now(),
	}
	if material != nil {
		seed.MaterialCode = material.Code
		seed.MaterialDescription = material.Description
		seed.UnitOfMeasure = material.UnitOfMeasure
	}
	if location != nil {
		seed.PlantCode = location.PlantCode
		seed.StorageLocation = location.StorageLocation
	}

	row, err := stockRepo.ApplyDelta(ctx, seed, entry.Quantity)
	if err != nil {
		return nil, fmt.Errorf("apply movement %s to stock: %w", entry.ID, err)
	}
	if row.CurrentQuantity.IsNegative() {
		a.log.Warn().
			Str("material_id", row.MaterialID).
			Str("location_id", row.LocationID).
			Str("document_number", entry.DocumentNumber).
			Str("quantity", row.CurrentQuantity.String()).
			Msg("saldo negativo tras contabilizar")
	}
	return row, nil
}
