package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// SupplyRepository persistencia de insumos. Usado dentro de transacciones para garantizar consistencia.
type SupplyRepository interface {
	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Supply, error)
	UpdateStockAndCost(ctx context.Context, id string, stock, unitCost decimal.Decimal) error
	ListBelowMinStock(ctx context.Context, companyID string) ([]*entity.Supply, error)
}
