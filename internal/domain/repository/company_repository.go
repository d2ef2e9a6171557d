package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// CompanyRepository lectura de tenants. GetByID devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
