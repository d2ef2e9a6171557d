package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de compra. CANCELLED es terminal y no admite recepción.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusPartial   = "PARTIAL"
	PurchaseStatusFinalized = "FINALIZED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Estados de ítem de compra (derivados de ReceivedQty vs OrderedQty).
const (
	PurchaseItemStatusPending  = "PENDING"
	PurchaseItemStatusPartial  = "PARTIAL"
	PurchaseItemStatusReceived = "RECEIVED"
)

// Purchase orden de compra a un proveedor, recibida de forma incremental.
type Purchase struct {
	ID            string
	CompanyID     string
	Code          string
	SupplierID    string
	PurchaseDate  time.Time
	Status        string
	TotalValue    decimal.Decimal
	InvoiceNumber string
	ReceivedAt    *time.Time
	UpdatedAt     time.Time
}

// AcceptsReceipt indica si la compra todavía puede recibir mercancía.
func (p *Purchase) AcceptsReceipt() bool {
	return p.Status == PurchaseStatusPending || p.Status == PurchaseStatusPartial
}

// PurchaseItem línea de compra. ReceivedQty + PendingQty == OrderedQty.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	SupplyID    string
	OrderedQty  decimal.Decimal
	UnitPrice   decimal.Decimal
	ReceivedQty decimal.Decimal
	PendingQty  decimal.Decimal
	Completed   bool // cerrada manualmente aunque quede pendiente
}

// Status deriva el estado de la línea.
func (i *PurchaseItem) Status() string {
	switch {
	case i.Completed || i.PendingQty.LessThanOrEqual(decimal.Zero):
		return PurchaseItemStatusReceived
	case i.ReceivedQty.GreaterThan(decimal.Zero):
		return PurchaseItemStatusPartial
	default:
		return PurchaseItemStatusPending
	}
}
