package ordering

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

// OrderRepos repositorios atados a la misma transacción de creación de pedido.
type OrderRepos struct {
	Customers     repository.CustomerRepository
	Cities        repository.CityRepository
	Orders        repository.OrderRepository
	Coupons       repository.CouponRepository
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
	Idempotency   repository.IdempotencyRepository
}

// TxRunner ejecuta fn dentro de una transacción; Commit si fn no falla, Rollback en cualquier otro caso
// (incluida la cancelación de ctx).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(repos OrderRepos) error) error
}

// NotificationDispatcher entrega externa de notificaciones ya persistidas (push/email).
// Se invoca después del Commit y no puede afectar el resultado del pedido.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []*entity.Notification)
}
