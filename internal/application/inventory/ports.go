package inventory

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

// InventoryRepos repositorios atados a la transacción de un movimiento manual.
type InventoryRepos struct {
	Supplies  repository.SupplyRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(repos InventoryRepos) error) error
}
