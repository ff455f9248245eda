package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransfer traslado entre dos ubicaciones: cada línea genera una salida en origen
// y una entrada en destino bajo el mismo número de documento.
type StockTransfer struct {
	ID             string
	DocumentNumber string // TRxxxxxxxx
	FromLocationID string
	ToLocationID   string
	PostingDate    time.Time
	DocumentDate   time.Time
	Items          []StockTransferItem
	HeaderText     string
	CreatedAt      time.Time
}

// StockTransferItem línea de un traslado.
type StockTransferItem struct {
	MaterialID   string
	MaterialCode string
	Quantity     decimal.Decimal
}
