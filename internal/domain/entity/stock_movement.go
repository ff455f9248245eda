package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement asiento del libro de stock: inmutable, solo se agrega.
// Quantity ya lleva el signo según la dirección del tipo de movimiento.
type StockMovement struct {
	ID                string
	MaterialID        string
	MaterialCode      string
	LocationID        string
	PlantCode         string
	StorageLocation   string
	MovementType      MovementType
	DocumentNumber    string
	Quantity          decimal.Decimal // positivo entrada, negativo salida
	UnitOfMeasure     UnitOfMeasure
	PostingDate       time.Time
	ReferenceDocument string // p.ej. número de orden de compra; solo entradas
	CreatedAt         time.Time
}

// Key devuelve el par (material, ubicación) afectado.
func (m *StockMovement) Key() StockKey {
	return StockKey{MaterialID: m.MaterialID, LocationID: m.LocationID}
}
