package ordering

import (
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComputeTotal total del pedido: ítems + envío (solo DELIVERY) - descuento.
func ComputeTotal(orderType string, itemsValue, deliveryFee, discount decimal.Decimal) decimal.Decimal {
	total := itemsValue.Sub(discount)
	if orderType == entity.OrderTypeDelivery {
		total = total.Add(deliveryFee)
	}
	return total
}

// CheckItemsValue verifica que la suma de las líneas coincida con el valor de ítems informado.
func CheckItemsValue(lineTotals []decimal.Decimal, itemsValue, tolerance decimal.Decimal) error {
	sum := decimal.Sum(decimal.Zero, lineTotals...)
	if sum.Sub(itemsValue).Abs().GreaterThan(tolerance) {
		return domain.WithDetail(domain.ErrTotalsMismatch, "suma de líneas %s, items_value %s", sum.StringFixed(2), itemsValue.StringFixed(2))
	}
	return nil
}

// CheckDeclaredTotal compara el total informado por el cliente con el calculado.
func CheckDeclaredTotal(declared, computed, tolerance decimal.Decimal) error {
	if declared.Sub(computed).Abs().GreaterThan(tolerance) {
		return domain.WithDetail(domain.ErrTotalsMismatch, "total calculado %s, informado %s", computed.StringFixed(2), declared.StringFixed(2))
	}
	return nil
}

// CheckChange aplica la regla de cambio: si la forma de pago acepta cambio y el cliente informa
// con cuánto paga, ese valor debe ser estrictamente mayor al total. Si la forma de pago no acepta
// cambio el valor se descarta (nil).
func CheckChange(acceptsChange bool, change *decimal.Decimal, total decimal.Decimal) (*decimal.Decimal, error) {
	if change == nil || !acceptsChange {
		return nil, nil
	}
	if !change.GreaterThan(total) {
		return nil, domain.WithDetail(domain.ErrInvalidChangeAmount, "informado %s, total %s", change.StringFixed(2), total.StringFixed(2))
	}
	c := *change
	return &c, nil
}
