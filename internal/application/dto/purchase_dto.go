package dto

import "github.com/shopspring/decimal"

// ReceivePurchaseRequest body para POST /api/purchases/:id/receipts.
type ReceivePurchaseRequest struct {
	Items          []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
	InvoiceNumber  string               `json:"invoiceNumber,omitempty" validate:"max=60"`
	IdempotencyKey string               `json:"idempotencyKey,omitempty" validate:"omitempty,max=128"`
}

// ReceiveItemRequest cantidad recibida de una línea. Complete cierra la línea aunque quede pendiente.
type ReceiveItemRequest struct {
	PurchaseItemID string          `json:"purchaseItemId" validate:"required"`
	ReceivedQty    decimal.Decimal `json:"receivedQty"`
	Complete       bool            `json:"complete"`
}

// PurchaseSummaryResponse estado de la compra y de cada línea.
type PurchaseSummaryResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Status        string                `json:"status"`
	InvoiceNumber string                `json:"invoiceNumber,omitempty"`
	TotalValue    decimal.Decimal       `json:"totalValue"`
	Items         []PurchaseItemSummary `json:"items"`
}

// PurchaseItemSummary estado de una línea de compra.
type PurchaseItemSummary struct {
	ID          string          `json:"id"`
	SupplyID    string          `json:"supplyId"`
	OrderedQty  decimal.Decimal `json:"orderedQty"`
	ReceivedQty decimal.Decimal `json:"receivedQty"`
	PendingQty  decimal.Decimal `json:"pendingQty"`
	Status      string          `json:"status"`
}
