package coupon

import (
	"time"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTolerance diferencia máxima (en unidades de moneda) entre el descuento calculado y el informado.
var DefaultTolerance = decimal.RequireFromString("0.5")

var hundred = decimal.NewFromInt(100)

// Validator valida cupones contra un pedido candidato.
type Validator struct {
	tolerance decimal.Decimal
}

// NewValidator construye el validador. Una tolerancia negativa o cero usa DefaultTolerance.
func NewValidator(tolerance decimal.Decimal) *Validator {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	return &Validator{tolerance: tolerance}
}

// Tolerance devuelve la tolerancia configurada.
func (v *Validator) Tolerance() decimal.Decimal { return v.tolerance }

// Check aplica, en orden: existencia/tenant/activo, vencimiento, cupo de usos, valor mínimo
// y cruce del descuento informado. Devuelve el descuento calculado por el servidor.
func (v *Validator) Check(c *entity.Coupon, companyID string, subtotal, declared decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if c == nil || c.CompanyID != companyID || !c.Active {
		return decimal.Zero, domain.ErrCouponInvalid
	}
	if c.ValidUntil != nil && !c.ValidUntil.After(now) {
		return decimal.Zero, domain.WithDetail(domain.ErrCouponExpired, "venció el %s", c.ValidUntil.Format(time.RFC3339))
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return decimal.Zero, domain.WithDetail(domain.ErrCouponExhausted, "%d de %d usos", c.CurrentUses, *c.MaxUses)
	}
	if c.MinOrderValue.IsPositive() && subtotal.LessThan(c.MinOrderValue) {
		return decimal.Zero, domain.WithDetail(domain.ErrCouponBelowMinimum, "mínimo %s, subtotal %s", c.MinOrderValue.StringFixed(2), subtotal.StringFixed(2))
	}
	computed, err := Discount(c, subtotal)
	if err != nil {
		return decimal.Zero, err
	}
	if computed.Sub(declared).Abs().GreaterThan(v.tolerance) {
		return decimal.Zero, domain.WithDetail(domain.ErrCouponDiscountMismatch, "calculado %s, informado %s", computed.StringFixed(2), declared.StringFixed(2))
	}
	return computed, nil
}

// Discount calcula el descuento de un cupón sobre el subtotal.
// PERCENTAGE: subtotal * valor / 100 redondeado a 2 decimales; FIXED: min(subtotal, valor).
// Ninguno supera el subtotal.
func Discount(c *entity.Coupon, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.IsNegative() {
		return decimal.Zero, domain.WithDetail(domain.ErrInvalidInput, "subtotal negativo")
	}
	var amount decimal.Decimal
	switch c.DiscountType {
	case entity.DiscountTypePercentage:
		amount = subtotal.Mul(c.DiscountValue).Div(hundred).Round(2)
	case entity.DiscountTypeFixed:
		amount = c.DiscountValue
	default:
		return decimal.Zero, domain.WithDetail(domain.ErrCouponInvalid, "tipo de descuento desconocido %q", c.DiscountType)
	}
	return decimal.Min(amount, subtotal), nil
}
