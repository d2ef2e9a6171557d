package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// IdempotencyRepository claves de idempotencia por empresa y ámbito.
type IdempotencyRepository interface {
	Get(ctx context.Context, companyID, scope, key string) (*entity.IdempotencyRecord, error)
	// Create devuelve domain.ErrDuplicate si la clave ya existe.
	Create(ctx context.Context, record *entity.IdempotencyRecord) error
}
