package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
// Los montos numéricos se validan en el caso de uso; aquí solo la forma.
type CreateOrderRequest struct {
	Type           string             `json:"type" validate:"required,oneof=DELIVERY PICKUP"`
	Customer       OrderCustomer      `json:"customer"`
	Delivery       *OrderDelivery     `json:"delivery,omitempty" validate:"required_if=Type DELIVERY"`
	Pickup         *OrderPickup       `json:"pickup,omitempty"`
	Payment        OrderPayment       `json:"payment"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,max=200,dive"`
	ItemsValue     decimal.Decimal    `json:"itemsValue"`
	DeliveryFee    decimal.Decimal    `json:"deliveryFee"`
	TotalValue     decimal.Decimal    `json:"totalValue"`
	Coupon         *OrderCoupon       `json:"coupon,omitempty"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty" validate:"omitempty,max=128"`
}

// OrderCustomer datos del cliente del pedido.
type OrderCustomer struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone" validate:"required,max=30"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// OrderDelivery dirección de entrega. CityID, si llega, resuelve el nombre de la ciudad.
type OrderDelivery struct {
	Street       string `json:"street" validate:"required,max=160"`
	Number       string `json:"number" validate:"max=20"`
	Complement   string `json:"complement,omitempty" validate:"max=120"`
	Neighborhood string `json:"neighborhood" validate:"max=120"`
	CityID       string `json:"cityId,omitempty"`
	CityName     string `json:"cityName,omitempty" validate:"max=120"`
	State        string `json:"state,omitempty" validate:"max=40"`
	ZipCode      string `json:"zipCode,omitempty" validate:"max=20"`
	Reference    string `json:"reference,omitempty" validate:"max=200"`
}

// OrderPickup datos de retiro en local.
type OrderPickup struct {
	Note string `json:"note,omitempty" validate:"max=300"`
}

// OrderPayment forma de pago elegida. ChangeAmount es el efectivo con el que paga el cliente.
type OrderPayment struct {
	MethodID     string           `json:"methodId" validate:"required"`
	ChangeAmount *decimal.Decimal `json:"changeAmount,omitempty"`
	Notes        string           `json:"notes,omitempty" validate:"max=500"`
}

// OrderItemRequest línea del pedido; precio y total se copian tal cual.
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Options   json.RawMessage `json:"options,omitempty"`
}

// OrderCoupon cupón aplicado y descuento calculado por el cliente.
type OrderCoupon struct {
	ID            string          `json:"id" validate:"required"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// CreateOrderResponse respuesta de creación de pedido.
type CreateOrderResponse struct {
	OrderID    string          `json:"orderId"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// OrderResponse detalle de un pedido persistido.
type OrderResponse struct {
	ID                string                `json:"id"`
	Number            string                `json:"number"`
	Type              string                `json:"type"`
	Status            string                `json:"status"`
	CustomerID        string                `json:"customerId"`
	DeliveryAddressID string                `json:"deliveryAddressId,omitempty"`
	PaymentMethodCode string                `json:"paymentMethodCode"`
	ChangeAmount      *decimal.Decimal      `json:"changeAmount,omitempty"`
	ItemsValue        decimal.Decimal       `json:"itemsValue"`
	DeliveryFee       decimal.Decimal       `json:"deliveryFee"`
	DiscountValue     decimal.Decimal       `json:"discountValue"`
	TotalValue        decimal.Decimal       `json:"totalValue"`
	Notes             string                `json:"notes,omitempty"`
	PlacedAt          time.Time             `json:"placedAt"`
	CouponID          string                `json:"couponId,omitempty"`
	Items             []OrderItemResponse   `json:"items"`
	History           []OrderStatusResponse `json:"history"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Options   json.RawMessage `json:"options,omitempty"`
}

// OrderStatusResponse entrada del historial de estados.
type OrderStatusResponse struct {
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ChangedAt  time.Time `json:"changedAt"`
}
