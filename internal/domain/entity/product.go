package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del menú. Sus relaciones (categorías, complementos, receta) se borran
// explícitamente antes del producto.
type Product struct {
	ID        string
	CompanyID string
	Name      string
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeLine consumo de un insumo por unidad de producto.
type RecipeLine struct {
	ProductID string
	SupplyID  string
	Quantity  decimal.Decimal
}
