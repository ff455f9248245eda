package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockKey identifica una fila de saldo.
type StockKey struct {
	MaterialID string
	LocationID string
}

// Less orden total de claves (material, luego ubicación).
func (k StockKey) Less(o StockKey) bool {
	if k.MaterialID != o.MaterialID {
		return k.MaterialID < o.MaterialID
	}
	return k.LocationID < o.LocationID
}

// CurrentStock saldo actual de un material en una ubicación, derivado del libro.
// Los campos descriptivos se copian al crear la fila y no se refrescan después.
type CurrentStock struct {
	ID                  string
	MaterialID          string
	MaterialCode        string
	MaterialDescription string
	LocationID          string
	PlantCode           string
	StorageLocation     string
	CurrentQuantity     decimal.Decimal // puede ser negativo
	UnitOfMeasure       UnitOfMeasure
	LastUpdated         time.Time
}

// Key devuelve la clave de la fila.
func (s *CurrentStock) Key() StockKey {
	return StockKey{MaterialID: s.MaterialID, LocationID: s.LocationID}
}
