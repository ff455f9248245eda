package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt documento de entrada de mercancía (inmutable una vez creado).
type GoodsReceipt struct {
	ID              string
	DocumentNumber  string // GRxxxxxxxx
	POID            string
	PONumber        string // referencia propagada a los movimientos
	InvoiceID       string
	VendorCode      string
	VendorName      string
	LocationID      string
	PlantCode       string
	StorageLocation string
	PostingDate     time.Time
	DocumentDate    time.Time
	Items           []GoodsReceiptItem
	HeaderText      string
	CreatedAt       time.Time
}

// GoodsReceiptItem línea de una entrada; el precio es opcional.
type GoodsReceiptItem struct {
	MaterialID   string
	MaterialCode string
	Quantity     decimal.Decimal
	UnitPrice    *decimal.Decimal
	TotalAmount  *decimal.Decimal
}
