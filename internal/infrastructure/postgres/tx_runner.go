package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/internal/application/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner   = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ catalog.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error (o ctx cancelado) hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder transacción de creación de pedido.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(repos ordering.OrderRepos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(ordering.OrderRepos{
			Customers:     NewCustomerRepository(tx),
			Cities:        NewCityRepository(tx),
			Orders:        NewOrderRepository(tx),
			Coupons:       NewCouponRepository(tx),
			Users:         NewUserRepository(tx),
			Notifications: NewNotificationRepository(tx),
			Idempotency:   NewIdempotencyRepository(tx),
		})
	})
}

// RunReceiving transacción de recepción de compra.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(repos purchasing.ReceivingRepos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(purchasing.ReceivingRepos{
			Purchases:   NewPurchaseRepository(tx),
			Supplies:    NewSupplyRepository(tx),
			Movements:   NewStockMovementRepository(tx),
			Idempotency: NewIdempotencyRepository(tx),
		})
	})
}

// RunInventory transacción de movimiento manual de insumo.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(repos inventory.InventoryRepos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(inventory.InventoryRepos{
			Supplies:  NewSupplyRepository(tx),
			Movements: NewStockMovementRepository(tx),
		})
	})
}

// RunCatalog transacción del borrado de producto.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}
