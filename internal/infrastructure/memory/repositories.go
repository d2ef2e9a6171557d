package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CompanyRepository       = companyRepo{}
	_ repository.PaymentMethodRepository = paymentMethodRepo{}
	_ repository.CityRepository          = cityRepo{}
	_ repository.UserRepository          = userRepo{}
	_ repository.CustomerRepository      = customerRepo{}
	_ repository.OrderRepository         = orderRepo{}
	_ repository.CouponRepository        = couponRepo{}
	_ repository.NotificationRepository  = notificationRepo{}
	_ repository.SupplyRepository        = supplyRepo{}
	_ repository.PurchaseRepository      = purchaseRepo{}
	_ repository.StockMovementRepository = movementRepo{}
	_ repository.IdempotencyRepository   = idempotencyRepo{}
	_ repository.ProductRepository       = productRepo{}
)

// db acceso al estado: dentro de una transacción (st fijo, sin lock) o directo (store + lock).
type db struct {
	st       *state
	store    *Store
	failures map[string]error
	lock     func() func()
}

func noLock() func() { return func() {} }

func (d *db) state() *state {
	if d.store != nil {
		return d.store.st
	}
	return d.st
}

func (d *db) fail(op string) error {
	return d.failures[op]
}

func idemKey(companyID, scope, key string) string {
	return strings.Join([]string{companyID, scope, key}, "|")
}

// --- companies ---

type companyRepo struct{ d *db }

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	defer r.d.lock()()
	c, ok := r.d.state().companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// --- catálogo ---

type paymentMethodRepo struct{ d *db }

func (r paymentMethodRepo) GetByID(_ context.Context, companyID, id string) (*entity.PaymentMethod, error) {
	defer r.d.lock()()
	m, ok := r.d.state().paymentMethods[id]
	if !ok || m.CompanyID != companyID {
		return nil, nil
	}
	return &m, nil
}

type cityRepo struct{ d *db }

func (r cityRepo) GetByID(_ context.Context, id string) (*entity.City, error) {
	defer r.d.lock()()
	c, ok := r.d.state().cities[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// --- usuarios ---

type userRepo struct{ d *db }

func (r userRepo) ListActiveByRoles(_ context.Context, companyID string, roles []string) ([]*entity.User, error) {
	defer r.d.lock()()
	var out []*entity.User
	for _, u := range r.d.state().users {
		if u.CompanyID == companyID && u.Status == "active" && slices.Contains(roles, u.Role) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- clientes ---

type customerRepo struct{ d *db }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.d.lock()()
	if err := r.d.fail("customers.create"); err != nil {
		return err
	}
	st := r.d.state()
	if _, ok := st.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	st.customers[c.ID] = *c
	return nil
}

func (r customerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	defer r.d.lock()()
	c, ok := r.d.state().customers[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r customerRepo) CreateAddress(_ context.Context, a *entity.DeliveryAddress) error {
	defer r.d.lock()()
	if err := r.d.fail("customers.create_address"); err != nil {
		return err
	}
	st := r.d.state()
	if _, ok := st.customers[a.CustomerID]; !ok {
		return domain.WithDetail(domain.ErrNotFound, "cliente %s", a.CustomerID)
	}
	st.addresses[a.ID] = *a
	return nil
}

// --- pedidos ---

type orderRepo struct{ d *db }

func (r orderRepo) NextSequence(_ context.Context, companyID string) (int64, error) {
	defer r.d.lock()()
	st := r.d.state()
	st.sequences[companyID]++
	return st.sequences[companyID], nil
}

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.d.lock()()
	if err := r.d.fail("orders.create"); err != nil {
		return err
	}
	st := r.d.state()
	for _, existing := range st.orders {
		if existing.CompanyID == o.CompanyID && existing.Number == o.Number {
			return domain.WithDetail(domain.ErrDuplicate, "número %s", o.Number)
		}
	}
	st.orders[o.ID] = *o
	return nil
}

func (r orderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	defer r.d.lock()()
	if err := r.d.fail("orders.create_item"); err != nil {
		return err
	}
	st := r.d.state()
	if _, ok := st.orders[item.OrderID]; !ok {
		return domain.WithDetail(domain.ErrNotFound, "pedido %s", item.OrderID)
	}
	st.orderItems = append(st.orderItems, *item)
	return nil
}

func (r orderRepo) CreateStatusHistory(_ context.Context, h *entity.OrderStatusHistory) error {
	defer r.d.lock()()
	if err := r.d.fail("orders.status_history"); err != nil {
		return err
	}
	st := r.d.state()
	st.statusHistory = append(st.statusHistory, *h)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, companyID, id string) (*entity.Order, error) {
	defer r.d.lock()()
	o, ok := r.d.state().orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	return &o, nil
}

func (r orderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	defer r.d.lock()()
	var out []*entity.OrderItem
	for _, it := range r.d.state().orderItems {
		if it.OrderID == orderID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r orderRepo) ListStatusHistory(_ context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	defer r.d.lock()()
	var out []*entity.OrderStatusHistory
	for _, h := range r.d.state().statusHistory {
		if h.OrderID == orderID {
			h := h
			out = append(out, &h)
		}
	}
	return out, nil
}

// --- cupones ---

type couponRepo struct{ d *db }

func (r couponRepo) GetForUpdate(_ context.Context, companyID, id string) (*entity.Coupon, error) {
	defer r.d.lock()()
	c, ok := r.d.state().coupons[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r couponRepo) IncrementUses(_ context.Context, id string) error {
	defer r.d.lock()()
	if err := r.d.fail("coupons.increment"); err != nil {
		return err
	}
	st := r.d.state()
	c, ok := st.coupons[id]
	if !ok {
		return domain.ErrCouponInvalid
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return domain.ErrCouponExhausted
	}
	c.CurrentUses++
	st.coupons[id] = c
	return nil
}

func (r couponRepo) CreateRedemption(_ context.Context, red *entity.CouponRedemption) error {
	defer r.d.lock()()
	if err := r.d.fail("coupons.redemption"); err != nil {
		return err
	}
	st := r.d.state()
	for _, existing := range st.redemptions {
		if existing.OrderID == red.OrderID && existing.CouponID == red.CouponID {
			return domain.ErrDuplicate
		}
	}
	st.redemptions = append(st.redemptions, *red)
	return nil
}

func (r couponRepo) GetRedemptionByOrder(_ context.Context, orderID string) (*entity.CouponRedemption, error) {
	defer r.d.lock()()
	for _, red := range r.d.state().redemptions {
		if red.OrderID == orderID {
			red := red
			return &red, nil
		}
	}
	return nil, nil
}

// --- notificaciones ---

type notificationRepo struct{ d *db }

func (r notificationRepo) CreateBatch(_ context.Context, notifications []*entity.Notification) error {
	defer r.d.lock()()
	if err := r.d.fail("notifications.create"); err != nil {
		return err
	}
	st := r.d.state()
	for _, n := range notifications {
		st.notifications = append(st.notifications, *n)
	}
	return nil
}

// --- insumos ---

type supplyRepo struct{ d *db }

func (r supplyRepo) GetForUpdate(_ context.Context, companyID, id string) (*entity.Supply, error) {
	defer r.d.lock()()
	s, ok := r.d.state().supplies[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return &s, nil
}

func (r supplyRepo) UpdateStockAndCost(_ context.Context, id string, stock, unitCost decimal.Decimal) error {
	defer r.d.lock()()
	if err := r.d.fail("supplies.update"); err != nil {
		return err
	}
	st := r.d.state()
	s, ok := st.supplies[id]
	if !ok {
		return domain.ErrSupplyNotFound
	}
	s.CurrentStock = stock
	s.UnitCost = unitCost
	st.supplies[id] = s
	return nil
}

func (r supplyRepo) ListBelowMinStock(_ context.Context, companyID string) ([]*entity.Supply, error) {
	defer r.d.lock()()
	var out []*entity.Supply
	for _, s := range r.d.state().supplies {
		if s.CompanyID == companyID && s.BelowMinimum() {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- compras ---

type purchaseRepo struct{ d *db }

func (r purchaseRepo) GetByID(_ context.Context, companyID, id string) (*entity.Purchase, error) {
	defer r.d.lock()()
	p, ok := r.d.state().purchases[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r purchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r purchaseRepo) ListItems(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	defer r.d.lock()()
	var out []*entity.PurchaseItem
	for _, it := range r.d.state().purchaseItems {
		if it.PurchaseID == purchaseID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r purchaseRepo) UpdateItem(_ context.Context, item *entity.PurchaseItem) error {
	defer r.d.lock()()
	if err := r.d.fail("purchases.update_item"); err != nil {
		return err
	}
	st := r.d.state()
	for i := range st.purchaseItems {
		if st.purchaseItems[i].ID == item.ID {
			st.purchaseItems[i] = *item
			return nil
		}
	}
	return domain.ErrUnknownPurchaseItem
}

func (r purchaseRepo) UpdateReceipt(_ context.Context, p *entity.Purchase) error {
	defer r.d.lock()()
	if err := r.d.fail("purchases.update_receipt"); err != nil {
		return err
	}
	st := r.d.state()
	existing, ok := st.purchases[p.ID]
	if !ok {
		return domain.ErrPurchaseNotFound
	}
	existing.Status = p.Status
	existing.InvoiceNumber = p.InvoiceNumber
	existing.ReceivedAt = p.ReceivedAt
	existing.UpdatedAt = p.UpdatedAt
	st.purchases[p.ID] = existing
	return nil
}

// --- movimientos ---

type movementRepo struct{ d *db }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.d.lock()()
	if err := r.d.fail("movements.create"); err != nil {
		return err
	}
	st := r.d.state()
	st.movements = append(st.movements, *m)
	return nil
}

func (r movementRepo) ListByDocument(_ context.Context, companyID, documentType, documentID string) ([]*entity.StockMovement, error) {
	defer r.d.lock()()
	var out []*entity.StockMovement
	for _, m := range r.d.state().movements {
		if m.CompanyID == companyID && m.DocumentType == documentType && m.DocumentID == documentID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

// --- idempotencia ---

type idempotencyRepo struct{ d *db }

func (r idempotencyRepo) Get(_ context.Context, companyID, scope, key string) (*entity.IdempotencyRecord, error) {
	defer r.d.lock()()
	rec, ok := r.d.state().idempotency[idemKey(companyID, scope, key)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r idempotencyRepo) Create(_ context.Context, rec *entity.IdempotencyRecord) error {
	defer r.d.lock()()
	if err := r.d.fail("idempotency.create"); err != nil {
		return err
	}
	st := r.d.state()
	k := idemKey(rec.CompanyID, rec.Scope, rec.Key)
	if _, ok := st.idempotency[k]; ok {
		return domain.ErrDuplicate
	}
	st.idempotency[k] = *rec
	return nil
}

// --- productos ---

type productRepo struct{ d *db }

func (r productRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	defer r.d.lock()()
	p, ok := r.d.state().products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) DeleteCategoryLinks(_ context.Context, productID string) (int64, error) {
	defer r.d.lock()()
	if err := r.d.fail("products.delete_categories"); err != nil {
		return 0, err
	}
	st := r.d.state()
	n := st.categoryLinks[productID]
	delete(st.categoryLinks, productID)
	return n, nil
}

func (r productRepo) DeleteComplements(_ context.Context, productID string) (int64, error) {
	defer r.d.lock()()
	if err := r.d.fail("products.delete_complements"); err != nil {
		return 0, err
	}
	st := r.d.state()
	n := st.complements[productID]
	delete(st.complements, productID)
	return n, nil
}

func (r productRepo) DeleteRecipe(_ context.Context, productID string) (int64, error) {
	defer r.d.lock()()
	if err := r.d.fail("products.delete_recipe"); err != nil {
		return 0, err
	}
	st := r.d.state()
	before := len(st.recipes)
	st.recipes = slices.DeleteFunc(st.recipes, func(l entity.RecipeLine) bool { return l.ProductID == productID })
	return int64(before - len(st.recipes)), nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	defer r.d.lock()()
	if err := r.d.fail("products.delete"); err != nil {
		return err
	}
	st := r.d.state()
	if _, ok := st.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(st.products, id)
	return nil
}
