package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un error de dominio para decidir cómo se expone al caller.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindPersistence  Kind = "PERSISTENCE"
)

// Error es un error de dominio con código estable y mensaje legible.
// Detail agrega el motivo concreto (ej. cantidades) sin cambiar el código.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por código, así errors.Is(err, ErrOverReceipt) funciona sobre copias con detalle.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput         = &Error{Kind: KindValidation, Code: "VALIDATION", Message: "entrada inválida"}
	ErrInvalidQuantity      = &Error{Kind: KindValidation, Code: "INVALID_QUANTITY", Message: "cantidad inválida"}
	ErrInvalidPaymentMethod = &Error{Kind: KindValidation, Code: "INVALID_PAYMENT_METHOD", Message: "forma de pago inválida o inactiva"}
	ErrUnknownPurchaseItem  = &Error{Kind: KindValidation, Code: "UNKNOWN_PURCHASE_ITEM", Message: "ítem no pertenece a la compra"}

	ErrCouponInvalid          = &Error{Kind: KindBusinessRule, Code: "COUPON_INVALID", Message: "cupón inválido o inactivo"}
	ErrCouponExpired          = &Error{Kind: KindBusinessRule, Code: "COUPON_EXPIRED", Message: "cupón vencido"}
	ErrCouponExhausted        = &Error{Kind: KindBusinessRule, Code: "COUPON_EXHAUSTED", Message: "cupón sin usos disponibles"}
	ErrCouponBelowMinimum     = &Error{Kind: KindBusinessRule, Code: "COUPON_BELOW_MINIMUM", Message: "pedido por debajo del valor mínimo del cupón"}
	ErrCouponDiscountMismatch = &Error{Kind: KindBusinessRule, Code: "COUPON_DISCOUNT_MISMATCH", Message: "el descuento informado no coincide con el cupón"}
	ErrInvalidChangeAmount    = &Error{Kind: KindBusinessRule, Code: "INVALID_CHANGE_AMOUNT", Message: "el valor para cambio debe ser mayor al total del pedido"}
	ErrTotalsMismatch         = &Error{Kind: KindBusinessRule, Code: "TOTALS_MISMATCH", Message: "los totales informados no coinciden"}
	ErrOverReceipt            = &Error{Kind: KindBusinessRule, Code: "OVER_RECEIPT", Message: "cantidad recibida mayor a la pendiente"}
	ErrNothingToReceive       = &Error{Kind: KindBusinessRule, Code: "NOTHING_TO_RECEIVE", Message: "ninguna línea con cantidad recibida"}
	ErrInsufficientStock      = &Error{Kind: KindBusinessRule, Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}

	ErrNotFound         = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "recurso no encontrado"}
	ErrTenantNotFound   = &Error{Kind: KindNotFound, Code: "TENANT_NOT_FOUND", Message: "empresa no encontrada"}
	ErrOrderNotFound    = &Error{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "pedido no encontrado"}
	ErrPurchaseNotFound = &Error{Kind: KindNotFound, Code: "PURCHASE_NOT_FOUND", Message: "compra no encontrada"}
	ErrSupplyNotFound   = &Error{Kind: KindNotFound, Code: "SUPPLY_NOT_FOUND", Message: "insumo no encontrado"}
	ErrProductNotFound  = &Error{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"}

	ErrPurchaseClosed = &Error{Kind: KindConflict, Code: "PURCHASE_CLOSED", Message: "la compra ya está finalizada o cancelada"}
	ErrDuplicate      = &Error{Kind: KindConflict, Code: "DUPLICATE", Message: "recurso duplicado"}
	ErrConflict       = &Error{Kind: KindConflict, Code: "CONFLICT", Message: "conflicto con el estado actual"}
)

// WithDetail devuelve una copia de base con el motivo concreto.
func WithDetail(base *Error, format string, args ...any) *Error {
	cp := *base
	cp.Detail = fmt.Sprintf(format, args...)
	return &cp
}

// KindOf devuelve la clasificación del error; todo lo que no es de dominio es de persistencia.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}

// CodeOf devuelve el código estable del error o "INTERNAL".
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}
