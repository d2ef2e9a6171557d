package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido (canal).
const (
	OrderTypeDelivery = "DELIVERY"
	OrderTypePickup   = "PICKUP"
)

// Estados de pedido. El core solo crea pedidos PENDING; el resto lo maneja el historial de estados.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order cabecera de un pedido.
// TotalValue = ItemsValue + DeliveryFee (solo DELIVERY) - DiscountValue.
type Order struct {
	ID                string
	CompanyID         string
	Number            string // único por empresa, generado
	Type              string // DELIVERY, PICKUP
	Status            string
	CustomerID        string
	DeliveryAddressID string // vacío en PICKUP
	PaymentMethodID   string
	PaymentMethodCode string
	ChangeAmount      *decimal.Decimal // efectivo entregado por el cliente, si aplica
	DeliveryFee       decimal.Decimal
	ItemsValue        decimal.Decimal
	DiscountValue     decimal.Decimal
	TotalValue        decimal.Decimal
	Notes             string
	PickupNote        string
	PlacedAt          time.Time
	CreatedBy         string
}

// OrderItem línea de pedido. Inmutable después de creada.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Options   json.RawMessage
}

// OrderStatusHistory registro de cada transición de estado del pedido.
type OrderStatusHistory struct {
	ID         string
	OrderID    string
	FromStatus string // vacío en el estado inicial
	ToStatus   string
	ChangedBy  string
	ChangedAt  time.Time
}
