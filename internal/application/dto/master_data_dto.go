package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	PlantCode       string `json:"plant_code"`
	PlantName       string `json:"plant_name"`
	StorageLocation string `json:"storage_location"`
	Description     string `json:"description,omitempty"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID              string    `json:"id"`
	PlantCode       string    `json:"plant_code"`
	PlantName       string    `json:"plant_name"`
	StorageLocation string    `json:"storage_location"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	MaterialCode        string `json:"material_code"`
	MaterialDescription string `json:"material_description"`
	MaterialGroup       string `json:"material_group,omitempty"`
	UnitOfMeasure       string `json:"unit_of_measure"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID                  string    `json:"id"`
	MaterialCode        string    `json:"material_code"`
	MaterialDescription string    `json:"material_description"`
	MaterialGroup       string    `json:"material_group,omitempty"`
	UnitOfMeasure       string    `json:"unit_of_measure"`
	CreatedAt           time.Time `json:"created_at"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders. po_date en formato YYYY-MM-DD.
type CreatePurchaseOrderRequest struct {
	PONumber   string `json:"po_number"`
	VendorCode string `json:"vendor_code"`
	VendorName string `json:"vendor_name"`
	PODate     string `json:"po_date"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string    `json:"id"`
	PONumber   string    `json:"po_number"`
	VendorCode string    `json:"vendor_code"`
	VendorName string    `json:"vendor_name"`
	PODate     string    `json:"po_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	VendorCode    string          `json:"vendor_code"`
	VendorName    string          `json:"vendor_name"`
	InvoiceDate   string          `json:"invoice_date"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
}

// UpdateInvoiceStatusRequest body para PUT /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse salida de una factura de proveedor.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	VendorCode    string          `json:"vendor_code"`
	VendorName    string          `json:"vendor_name"`
	InvoiceDate   string          `json:"invoice_date"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	Status        string          `json:"status"`
	FilePath      string          `json:"file_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DashboardStatsResponse contadores del tablero.
type DashboardStatsResponse struct {
	TotalMaterials  int `json:"total_materials"`
	TotalLocations  int `json:"total_locations"`
	PendingInvoices int `json:"pending_invoices"`
	TotalReceipts   int `json:"total_receipts"`
	TotalIssues     int `json:"total_issues"`
	TotalTransfers  int `json:"total_transfers"`
	TotalMovements  int `json:"total_movements"`
}
