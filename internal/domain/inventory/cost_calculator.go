package inventory

import (
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/shopspring/decimal"
)

// CostDecimals decimales del costo promedio persistido.
const CostDecimals = 2

// QuantityDecimals decimales de las cantidades persistidas (stock, recepciones, ítems).
const QuantityDecimals = 3

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoStock = StockActual + CantEntrada
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / NuevoStock,
// redondeado a 2 decimales (mitad hacia arriba). Si NuevoStock <= 0 el costo no cambia.
// Se aplica por línea recibida, nunca agrupando insumos.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) (nuevoStock, nuevoCosto decimal.Decimal, err error) {
	if cantEntrada.IsNegative() {
		return stockActual, costoActual, domain.WithDetail(domain.ErrInvalidQuantity, "cantidad recibida negativa: %s", cantEntrada)
	}
	if costoEntrada.IsNegative() {
		return stockActual, costoActual, domain.WithDetail(domain.ErrInvalidInput, "costo de entrada negativo: %s", costoEntrada)
	}
	if cantEntrada.IsZero() {
		return stockActual, costoActual, nil
	}
	nuevoStock = stockActual.Add(cantEntrada)
	if nuevoStock.LessThanOrEqual(decimal.Zero) {
		return nuevoStock, costoActual, nil
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return nuevoStock, num.Div(nuevoStock).Round(CostDecimals), nil
}

// Issue descuenta cantidad del stock actual sin dejarlo negativo. El costo promedio no cambia en salidas.
func Issue(stockActual, cantidad decimal.Decimal) (decimal.Decimal, error) {
	if !cantidad.IsPositive() {
		return stockActual, domain.WithDetail(domain.ErrInvalidQuantity, "cantidad de salida debe ser positiva: %s", cantidad)
	}
	if stockActual.LessThan(cantidad) {
		return stockActual, domain.WithDetail(domain.ErrInsufficientStock, "disponible %s, solicitado %s", stockActual, cantidad)
	}
	return stockActual.Sub(cantidad), nil
}

// CheckQuantityScale rechaza cantidades con más decimales de los que se persisten; la base las
// redondearía y el libro dejaría de cuadrar con el stock.
func CheckQuantityScale(cantidad decimal.Decimal) error {
	if cantidad.Exponent() < -QuantityDecimals && !cantidad.Equal(cantidad.Truncate(QuantityDecimals)) {
		return domain.WithDetail(domain.ErrInvalidQuantity, "máximo %d decimales: %s", QuantityDecimals, cantidad)
	}
	return nil
}
