package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// ProductRepository persistencia de productos y sus relaciones.
// Las relaciones se borran explícitamente (sin ON DELETE CASCADE).
type ProductRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	DeleteCategoryLinks(ctx context.Context, productID string) (int64, error)
	DeleteComplements(ctx context.Context, productID string) (int64, error)
	DeleteRecipe(ctx context.Context, productID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
