package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de documento (posting_date, document_date).
const DateLayout = "2006-01-02"

// GoodsReceiptItemRequest línea de entrada. material_code es opcional; si viene debe coincidir con el maestro.
type GoodsReceiptItemRequest struct {
	MaterialID   string           `json:"material_id"`
	MaterialCode string           `json:"material_code,omitempty"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateGoodsReceiptRequest body para POST /api/goods-receipts.
type CreateGoodsReceiptRequest struct {
	POID         string                    `json:"po_id,omitempty"`
	PONumber     string                    `json:"po_number,omitempty"`
	InvoiceID    string                    `json:"invoice_id,omitempty"`
	VendorCode   string                    `json:"vendor_code"`
	VendorName   string                    `json:"vendor_name"`
	LocationID   string                    `json:"location_id"`
	PostingDate  string                    `json:"posting_date"`
	DocumentDate string                    `json:"document_date"`
	Items        []GoodsReceiptItemRequest `json:"items"`
	HeaderText   string                    `json:"header_text,omitempty"`
}

// GoodsIssueItemRequest línea de salida.
type GoodsIssueItemRequest struct {
	MaterialID   string          `json:"material_id"`
	MaterialCode string          `json:"material_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostCenter   string          `json:"cost_center,omitempty"`
}

// CreateGoodsIssueRequest body para POST /api/goods-issues.
type CreateGoodsIssueRequest struct {
	MovementType string                  `json:"movement_type"`
	LocationID   string                  `json:"location_id"`
	PostingDate  string                  `json:"posting_date"`
	DocumentDate string                  `json:"document_date"`
	Items        []GoodsIssueItemRequest `json:"items"`
	HeaderText   string                  `json:"header_text,omitempty"`
}

// StockTransferItemRequest línea de traslado.
type StockTransferItemRequest struct {
	MaterialID   string          `json:"material_id"`
	MaterialCode string          `json:"material_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateStockTransferRequest body para POST /api/stock-transfers.
type CreateStockTransferRequest struct {
	FromLocationID string                     `json:"from_location_id"`
	ToLocationID   string                     `json:"to_location_id"`
	PostingDate    string                     `json:"posting_date"`
	DocumentDate   string                     `json:"document_date"`
	Items          []StockTransferItemRequest `json:"items"`
	HeaderText     string                     `json:"header_text,omitempty"`
}

// GoodsReceiptItemResponse línea de entrada.
type GoodsReceiptItemResponse struct {
	MaterialID   string           `json:"material_id"`
	MaterialCode string           `json:"material_code"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
}

// GoodsReceiptResponse documento de entrada. Movements solo se informa al contabilizar.
type GoodsReceiptResponse struct {
	ID              string                     `json:"id"`
	DocumentNumber  string                     `json:"document_number"`
	POID            string                     `json:"po_id,omitempty"`
	PONumber        string                     `json:"po_number,omitempty"`
	InvoiceID       string                     `json:"invoice_id,omitempty"`
	VendorCode      string                     `json:"vendor_code"`
	VendorName      string                     `json:"vendor_name"`
	LocationID      string                     `json:"location_id"`
	PlantCode       string                     `json:"plant_code"`
	StorageLocation string                     `json:"storage_location"`
	PostingDate     string                     `json:"posting_date"`
	DocumentDate    string                     `json:"document_date"`
	Items           []GoodsReceiptItemResponse `json:"items"`
	HeaderText      string                     `json:"header_text,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	Movements       []StockMovementResponse    `json:"movements,omitempty"`
}

// GoodsIssueItemResponse línea de salida.
type GoodsIssueItemResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialCode string          `json:"material_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostCenter   string          `json:"cost_center,omitempty"`
}

// GoodsIssueResponse documento de salida.
type GoodsIssueResponse struct {
	ID              string                   `json:"id"`
	DocumentNumber  string                   `json:"document_number"`
	MovementType    string                   `json:"movement_type"`
	LocationID      string                   `json:"location_id"`
	PlantCode       string                   `json:"plant_code"`
	StorageLocation string                   `json:"storage_location"`
	PostingDate     string                   `json:"posting_date"`
	DocumentDate    string                   `json:"document_date"`
	Items           []GoodsIssueItemResponse `json:"items"`
	HeaderText      string                   `json:"header_text,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	Movements       []StockMovementResponse  `json:"movements,omitempty"`
}

// StockTransferItemResponse línea de traslado.
type StockTransferItemResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialCode string          `json:"material_code"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// StockTransferResponse documento de traslado.
type StockTransferResponse struct {
	ID             string                      `json:"id"`
	DocumentNumber string                      `json:"document_number"`
	FromLocationID string                      `json:"from_location_id"`
	ToLocationID   string                      `json:"to_location_id"`
	PostingDate    string                      `json:"posting_date"`
	DocumentDate   string                      `json:"document_date"`
	Items          []StockTransferItemResponse `json:"items"`
	HeaderText     string                      `json:"header_text,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	Movements      []StockMovementResponse     `json:"movements,omitempty"`
}

// StockMovementResponse asiento del libro de stock.
type StockMovementResponse struct {
	ID                string          `json:"id"`
	MaterialID        string          `json:"material_id"`
	MaterialCode      string          `json:"material_code"`
	LocationID        string          `json:"location_id"`
	PlantCode         string          `json:"plant_code"`
	StorageLocation   string          `json:"storage_location"`
	MovementType      string          `json:"movement_type"`
	DocumentNumber    string          `json:"document_number"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	PostingDate       string          `json:"posting_date"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CurrentStockResponse fila de saldo actual.
type CurrentStockResponse struct {
	ID                  string          `json:"id"`
	MaterialID          string          `json:"material_id"`
	MaterialCode        string          `json:"material_code"`
	MaterialDescription string          `json:"material_description"`
	LocationID          string          `json:"location_id"`
	PlantCode           string          `json:"plant_code"`
	StorageLocation     string          `json:"storage_location"`
	CurrentQuantity     decimal.Decimal `json:"current_quantity"`
	UnitOfMeasure       string          `json:"unit_of_measure"`
	LastUpdated         time.Time       `json:"last_updated"`
}

// MovementTypeResponse entrada de la tabla de políticas.
type MovementTypeResponse struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	Direction string `json:"direction"`
}

// MovementHistoryQuery filtros de GET /api/stock-movements.
type MovementHistoryQuery struct {
	MaterialID     string `query:"material_id"`
	LocationID     string `query:"location_id"`
	DocumentNumber string `query:"document_number"`
	Limit          int    `query:"limit"`
}

// StockDriftResponse diferencia entre saldo y suma del libro para un par.
type StockDriftResponse struct {
	MaterialID string          `json:"material_id"`
	LocationID string          `json:"location_id"`
	Balance    decimal.Decimal `json:"balance"`
	Ledger     decimal.Decimal `json:"ledger"`
	Difference decimal.Decimal `json:"difference"`
}
