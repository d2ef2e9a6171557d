package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// PurchaseRepository persistencia de compras y sus líneas.
type PurchaseRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la cabecera de la compra hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	UpdateItem(ctx context.Context, item *entity.PurchaseItem) error
	UpdateReceipt(ctx context.Context, purchase *entity.Purchase) error
}
