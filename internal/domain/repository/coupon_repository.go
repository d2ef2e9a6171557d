package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// CouponRepository persistencia de cupones y redenciones.
type CouponRepository interface {
	// GetForUpdate bloquea la fila del cupón hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Coupon, error)
	// IncrementUses suma 1 a current_uses sin superar max_uses; devuelve ErrCouponExhausted si no hay cupo.
	IncrementUses(ctx context.Context, id string) error
	CreateRedemption(ctx context.Context, r *entity.CouponRedemption) error
	GetRedemptionByOrder(ctx context.Context, orderID string) (*entity.CouponRedemption, error)
}
