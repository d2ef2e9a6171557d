package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// PaymentMethodRepository catálogo de formas de pago por empresa.
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.PaymentMethod, error)
}

// CityRepository catálogo global de ciudades.
type CityRepository interface {
	GetByID(ctx context.Context, id string) (*entity.City, error)
}
