package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// CustomerRepository persistencia de clientes y sus direcciones de entrega.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	CreateAddress(ctx context.Context, address *entity.DeliveryAddress) error
}
