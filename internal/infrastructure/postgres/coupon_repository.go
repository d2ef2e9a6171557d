package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

// CouponRepo cupones y redenciones (usable con pool o tx).
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

const couponColumns = `id, company_id, code, discount_type, discount_value, min_order_value,
	valid_until, max_uses, current_uses, active`

// GetForUpdate obtiene el cupón de la empresa y bloquea la fila (SELECT FOR UPDATE).
func (r *CouponRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1 AND company_id = $2 FOR UPDATE`
	var c entity.Coupon
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue,
		&c.ValidUntil, &c.MaxUses, &c.CurrentUses, &c.Active,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon for update: %w", err)
	}
	return &c, nil
}

// IncrementUses suma un uso solo si queda cupo; el WHERE protege el límite aunque falte el bloqueo.
func (r *CouponRepo) IncrementUses(ctx context.Context, id string) error {
	query := `
		UPDATE coupons SET current_uses = current_uses + 1
		WHERE id = $1 AND (max_uses IS NULL OR current_uses < max_uses)`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment coupon uses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponExhausted
	}
	return nil
}

// CreateRedemption registra el uso del cupón en el pedido.
func (r *CouponRepo) CreateRedemption(ctx context.Context, red *entity.CouponRedemption) error {
	if red.ID == "" {
		red.ID = uuid.New().String()
	}
	query := `
		INSERT INTO coupon_redemptions (id, order_id, coupon_id, discount_applied, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, red.ID, red.OrderID, red.CouponID, red.DiscountApplied, red.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon redemption: %w", err)
	}
	return nil
}

// GetRedemptionByOrder redención del pedido, (nil, nil) si no usó cupón.
func (r *CouponRepo) GetRedemptionByOrder(ctx context.Context, orderID string) (*entity.CouponRedemption, error) {
	query := `
		SELECT id, order_id, coupon_id, discount_applied, created_at
		FROM coupon_redemptions WHERE order_id = $1 LIMIT 1`
	var red entity.CouponRedemption
	err := r.q.QueryRow(ctx, query, orderID).Scan(&red.ID, &red.OrderID, &red.CouponID, &red.DiscountApplied, &red.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon redemption: %w", err)
	}
	return &red, nil
}
