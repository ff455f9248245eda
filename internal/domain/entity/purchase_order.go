package entity

import "time"

// PurchaseOrder orden de compra; las entradas solo la referencian por número.
type PurchaseOrder struct {
	ID         string
	PONumber   string
	VendorCode string
	VendorName string
	PODate     time.Time
	CreatedAt  time.Time
}
