package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de proveedor.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusVerified InvoiceStatus = "verified"
	InvoiceStatusBlocked  InvoiceStatus = "blocked"
	InvoiceStatusPosted   InvoiceStatus = "posted"
)

// Valid indica si el estado es conocido.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusVerified, InvoiceStatusBlocked, InvoiceStatusPosted:
		return true
	}
	return false
}

// Invoice factura de proveedor (solo vínculo de referencia, sin conciliación).
type Invoice struct {
	ID            string
	InvoiceNumber string
	VendorCode    string
	VendorName    string
	InvoiceDate   time.Time
	InvoiceAmount decimal.Decimal
	Status        InvoiceStatus
	FilePath      string
	CreatedAt     time.Time
}
