package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// StockMovementRepository libro de movimientos; solo inserción.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByDocument(ctx context.Context, companyID, documentType, documentID string) ([]*entity.StockMovement, error)
}
