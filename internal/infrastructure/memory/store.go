// Package memory implementa los repositorios y TxRunners sobre un estado en memoria con
// semántica de transacción: cada Run trabaja sobre una copia y solo la publica en el Commit.
// Se usa en tests y con APP_STORE=memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/internal/application/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner   = (*Store)(nil)
	_ purchasing.TxRunner = (*Store)(nil)
	_ inventory.TxRunner  = (*Store)(nil)
	_ catalog.TxRunner    = (*Store)(nil)
)

// Store estado compartido. Las transacciones se serializan con mu, equivalente a bloquear
// todas las filas que tocan.
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

type state struct {
	companies      map[string]entity.Company
	users          map[string]entity.User
	paymentMethods map[string]entity.PaymentMethod
	cities         map[string]entity.City
	customers      map[string]entity.Customer
	addresses      map[string]entity.DeliveryAddress
	orders         map[string]entity.Order
	orderItems     []entity.OrderItem
	statusHistory  []entity.OrderStatusHistory
	sequences      map[string]int64
	coupons        map[string]entity.Coupon
	redemptions    []entity.CouponRedemption
	notifications  []entity.Notification
	supplies       map[string]entity.Supply
	purchases      map[string]entity.Purchase
	purchaseItems  []entity.PurchaseItem
	movements      []entity.StockMovement
	idempotency    map[string]entity.IdempotencyRecord
	products       map[string]entity.Product
	categoryLinks  map[string]int64
	complements    map[string]int64
	recipes        []entity.RecipeLine
}

func newState() *state {
	return &state{
		companies:      map[string]entity.Company{},
		users:          map[string]entity.User{},
		paymentMethods: map[string]entity.PaymentMethod{},
		cities:         map[string]entity.City{},
		customers:      map[string]entity.Customer{},
		addresses:      map[string]entity.DeliveryAddress{},
		orders:         map[string]entity.Order{},
		sequences:      map[string]int64{},
		coupons:        map[string]entity.Coupon{},
		supplies:       map[string]entity.Supply{},
		purchases:      map[string]entity.Purchase{},
		idempotency:    map[string]entity.IdempotencyRecord{},
		products:       map[string]entity.Product{},
		categoryLinks:  map[string]int64{},
		complements:    map[string]int64{},
	}
}

// clone copia el estado. Los valores se guardan por valor y los punteros internos
// (ValidUntil, MaxUses, ChangeAmount) nunca se mutan en sitio.
func (s *state) clone() *state {
	return &state{
		companies:      maps.Clone(s.companies),
		users:          maps.Clone(s.users),
		paymentMethods: maps.Clone(s.paymentMethods),
		cities:         maps.Clone(s.cities),
		customers:      maps.Clone(s.customers),
		addresses:      maps.Clone(s.addresses),
		orders:         maps.Clone(s.orders),
		orderItems:     slices.Clone(s.orderItems),
		statusHistory:  slices.Clone(s.statusHistory),
		sequences:      maps.Clone(s.sequences),
		coupons:        maps.Clone(s.coupons),
		redemptions:    slices.Clone(s.redemptions),
		notifications:  slices.Clone(s.notifications),
		supplies:       maps.Clone(s.supplies),
		purchases:      maps.Clone(s.purchases),
		purchaseItems:  slices.Clone(s.purchaseItems),
		movements:      slices.Clone(s.movements),
		idempotency:    maps.Clone(s.idempotency),
		products:       maps.Clone(s.products),
		categoryLinks:  maps.Clone(s.categoryLinks),
		complements:    maps.Clone(s.complements),
		recipes:        slices.Clone(s.recipes),
	}
}

// FailOn hace que la operación op (ej. "notifications.create") devuelva err. Sirve para
// probar el Rollback ante fallas al final de la transacción. err nil quita la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// run ejecuta fn sobre una copia del estado y la publica solo si fn no falla y ctx sigue vivo.
func (s *Store) run(ctx context.Context, fn func(d *db) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	d := &db{st: work, failures: s.failures, lock: noLock}
	if err := fn(d); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// direct repositorios fuera de transacción: cada llamada toma el lock.
func (s *Store) direct() *db {
	return &db{store: s, failures: s.failures, lock: func() func() {
		s.mu.Lock()
		return s.mu.Unlock
	}}
}

// RunOrder implementa ordering.TxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(repos ordering.OrderRepos) error) error {
	return s.run(ctx, func(d *db) error {
		return fn(ordering.OrderRepos{
			Customers:     customerRepo{d},
			Cities:        cityRepo{d},
			Orders:        orderRepo{d},
			Coupons:       couponRepo{d},
			Users:         userRepo{d},
			Notifications: notificationRepo{d},
			Idempotency:   idempotencyRepo{d},
		})
	})
}

// RunReceiving implementa purchasing.TxRunner.
func (s *Store) RunReceiving(ctx context.Context, fn func(repos purchasing.ReceivingRepos) error) error {
	return s.run(ctx, func(d *db) error {
		return fn(purchasing.ReceivingRepos{
			Purchases:   purchaseRepo{d},
			Supplies:    supplyRepo{d},
			Movements:   movementRepo{d},
			Idempotency: idempotencyRepo{d},
		})
	})
}

// RunInventory implementa inventory.TxRunner.
func (s *Store) RunInventory(ctx context.Context, fn func(repos inventory.InventoryRepos) error) error {
	return s.run(ctx, func(d *db) error {
		return fn(inventory.InventoryRepos{
			Supplies:  supplyRepo{d},
			Movements: movementRepo{d},
		})
	})
}

// RunCatalog implementa catalog.TxRunner.
func (s *Store) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return s.run(ctx, func(d *db) error {
		return fn(productRepo{d})
	})
}

// Repositorios fuera de transacción.

func (s *Store) Companies() repository.CompanyRepository           { return companyRepo{s.direct()} }
func (s *Store) PaymentMethods() repository.PaymentMethodRepository { return paymentMethodRepo{s.direct()} }
func (s *Store) Idempotency() repository.IdempotencyRepository      { return idempotencyRepo{s.direct()} }
func (s *Store) Orders() repository.OrderRepository                 { return orderRepo{s.direct()} }
func (s *Store) Coupons() repository.CouponRepository               { return couponRepo{s.direct()} }
func (s *Store) Purchases() repository.PurchaseRepository           { return purchaseRepo{s.direct()} }
func (s *Store) Supplies() repository.SupplyRepository              { return supplyRepo{s.direct()} }
func (s *Store) Products() repository.ProductRepository             { return productRepo{s.direct()} }
