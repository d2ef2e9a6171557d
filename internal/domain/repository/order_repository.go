package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// OrderRepository persistencia del grafo de pedido (cabecera, ítems, historial).
type OrderRepository interface {
	// NextSequence incrementa y devuelve el consecutivo de pedidos de la empresa.
	NextSequence(ctx context.Context, companyID string) (int64, error)
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	CreateStatusHistory(ctx context.Context, h *entity.OrderStatusHistory) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	ListStatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error)
}
