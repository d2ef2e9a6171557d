package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply insumo (materia prima) controlado por cantidad y costo promedio ponderado.
// CurrentStock nunca queda negativo después de un movimiento confirmado.
type Supply struct {
	ID           string
	CompanyID    string
	Name         string
	Unit         string // kg, l, un
	CurrentStock decimal.Decimal
	UnitCost     decimal.Decimal // costo promedio ponderado
	MinStock     decimal.Decimal
	UpdatedAt    time.Time
}

// BelowMinimum indica si el insumo está por debajo del stock mínimo. Sin mínimo configurado nunca lo está.
func (s *Supply) BelowMinimum() bool {
	return s.MinStock.IsPositive() && s.CurrentStock.LessThan(s.MinStock)
}
