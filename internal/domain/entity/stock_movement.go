package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "IN"
	MovementTypeOut        = "OUT"
	MovementTypeProduction = "PRODUCTION"
	MovementTypeDiscard    = "DISCARD"
	MovementTypeAdjust     = "ADJUST"
)

// Tipos de documento origen del movimiento.
const (
	DocumentTypePurchase = "PURCHASE"
	DocumentTypeManual   = "MANUAL"
)

// StockMovement registro del libro de movimientos (append-only, nunca se actualiza ni borra).
type StockMovement struct {
	ID           string
	CompanyID    string
	SupplyID     string
	Type         string
	Quantity     decimal.Decimal // positivo entrada, negativo salida
	UnitCost     decimal.Decimal
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	DocumentType string
	DocumentID   string
	Note         string
	ActorID      string
	CreatedAt    time.Time
}
