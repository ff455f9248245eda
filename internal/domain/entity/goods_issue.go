package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsIssue documento de salida de mercancía (consumo, venta, devoluciones).
type GoodsIssue struct {
	ID              string
	DocumentNumber  string // GIxxxxxxxx
	MovementType    MovementType
	LocationID      string
	PlantCode       string
	StorageLocation string
	PostingDate     time.Time
	DocumentDate    time.Time
	Items           []GoodsIssueItem
	HeaderText      string
	CreatedAt       time.Time
}

// GoodsIssueItem línea de una salida.
type GoodsIssueItem struct {
	MaterialID   string
	MaterialCode string
	Quantity     decimal.Decimal
	CostCenter   string
}
