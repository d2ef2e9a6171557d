package memory

import (
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// Carga de datos (seed) e inspección del estado confirmado.

func (s *Store) AddCompany(c entity.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.companies[c.ID] = c
}

func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

func (s *Store) AddPaymentMethod(m entity.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.paymentMethods[m.ID] = m
}

func (s *Store) AddCity(c entity.City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.cities[c.ID] = c
}

func (s *Store) AddCoupon(c entity.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.coupons[c.ID] = c
}

func (s *Store) AddSupply(sp entity.Supply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.supplies[sp.ID] = sp
}

// AddPurchase carga la compra con sus líneas; PendingQty se deriva si viene en cero.
func (s *Store) AddPurchase(p entity.Purchase, items ...entity.PurchaseItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.purchases[p.ID] = p
	for _, it := range items {
		it.PurchaseID = p.ID
		if it.PendingQty.IsZero() && !it.Completed {
			it.PendingQty = it.OrderedQty.Sub(it.ReceivedQty)
		}
		s.st.purchaseItems = append(s.st.purchaseItems, it)
	}
}

// AddProduct carga un producto con la cantidad de vínculos a categorías y complementos y su receta.
func (s *Store) AddProduct(p entity.Product, categoryLinks, complements int64, recipe ...entity.RecipeLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
	if categoryLinks > 0 {
		s.st.categoryLinks[p.ID] = categoryLinks
	}
	if complements > 0 {
		s.st.complements[p.ID] = complements
	}
	for _, l := range recipe {
		l.ProductID = p.ID
		s.st.recipes = append(s.st.recipes, l)
	}
}

// Coupon devuelve el cupón confirmado.
func (s *Store) Coupon(id string) (entity.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.coupons[id]
	return c, ok
}

// Supply devuelve el insumo confirmado.
func (s *Store) Supply(id string) (entity.Supply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.st.supplies[id]
	return sp, ok
}

// PurchaseItems devuelve las líneas confirmadas de la compra.
func (s *Store) PurchaseItems(purchaseID string) []entity.PurchaseItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.PurchaseItem
	for _, it := range s.st.purchaseItems {
		if it.PurchaseID == purchaseID {
			out = append(out, it)
		}
	}
	return out
}

// Counts cantidades de filas confirmadas por tabla.
type Counts struct {
	Customers     int
	Addresses     int
	Orders        int
	OrderItems    int
	StatusHistory int
	Redemptions   int
	Notifications int
	Movements     int
	Idempotency   int
	Products      int
	RecipeLines   int
}

// Counts devuelve cuántas filas hay confirmadas; útil para verificar Rollback.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Customers:     len(s.st.customers),
		Addresses:     len(s.st.addresses),
		Orders:        len(s.st.orders),
		OrderItems:    len(s.st.orderItems),
		StatusHistory: len(s.st.statusHistory),
		Redemptions:   len(s.st.redemptions),
		Notifications: len(s.st.notifications),
		Movements:     len(s.st.movements),
		Idempotency:   len(s.st.idempotency),
		Products:      len(s.st.products),
		RecipeLines:   len(s.st.recipes),
	}
}

// Notifications devuelve las notificaciones confirmadas.
func (s *Store) Notifications() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Notification, len(s.st.notifications))
	copy(out, s.st.notifications)
	return out
}

// Movements devuelve el libro de movimientos confirmado.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, len(s.st.movements))
	copy(out, s.st.movements)
	return out
}
