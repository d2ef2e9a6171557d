package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo cabecera, ítems e historial de pedidos (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// NextSequence incrementa el contador de la empresa. La fila queda bloqueada hasta el fin de la tx,
// así dos pedidos concurrentes nunca obtienen el mismo valor.
func (r *OrderRepo) NextSequence(ctx context.Context, companyID string) (int64, error) {
	query := `
		INSERT INTO order_sequences (company_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_value = order_sequences.last_value + 1
		RETURNING last_value`
	var seq int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return seq, nil
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, number, type, status, customer_id, delivery_address_id,
			payment_method_id, payment_method_code, change_amount, delivery_fee, items_value,
			discount_value, total_value, notes, pickup_note, placed_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.Number, o.Type, o.Status, o.CustomerID, nullString(o.DeliveryAddressID),
		o.PaymentMethodID, o.PaymentMethodCode, o.ChangeAmount, o.DeliveryFee, o.ItemsValue,
		o.DiscountValue, o.TotalValue, nullString(o.Notes), nullString(o.PickupNote), o.PlacedAt, o.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, line_total, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal, nullJSON(it.Options),
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// CreateStatusHistory registra una transición de estado.
func (r *OrderRepo) CreateStatusHistory(ctx context.Context, h *entity.OrderStatusHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, h.ID, h.OrderID, nullString(h.FromStatus), h.ToStatus, h.ChangedBy, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert order status history: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido de la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	query := `
		SELECT id, company_id, number, type, status, customer_id, delivery_address_id,
			payment_method_id, payment_method_code, change_amount, delivery_fee, items_value,
			discount_value, total_value, notes, pickup_note, placed_at, created_by
		FROM orders WHERE id = $1 AND company_id = $2`
	var o entity.Order
	var addressID, notes, pickupNote *string
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&o.ID, &o.CompanyID, &o.Number, &o.Type, &o.Status, &o.CustomerID, &addressID,
		&o.PaymentMethodID, &o.PaymentMethodCode, &o.ChangeAmount, &o.DeliveryFee, &o.ItemsValue,
		&o.DiscountValue, &o.TotalValue, &notes, &pickupNote, &o.PlacedAt, &o.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.DeliveryAddressID = derefString(addressID)
	o.Notes = derefString(notes)
	o.PickupNote = derefString(pickupNote)
	return &o, nil
}

// ListItems líneas del pedido en orden de inserción.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, line_total, options
		FROM order_items WHERE order_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		var options []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal, &options); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Options = options
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListStatusHistory historial de estados del pedido, del más antiguo al más reciente.
func (r *OrderRepo) ListStatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_by, changed_at
		FROM order_status_history WHERE order_id = $1 ORDER BY changed_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order status history: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderStatusHistory
	for rows.Next() {
		var h entity.OrderStatusHistory
		var from *string
		if err := rows.Scan(&h.ID, &h.OrderID, &from, &h.ToStatus, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan order status history: %w", err)
		}
		h.FromStatus = derefString(from)
		list = append(list, &h)
	}
	return list, rows.Err()
}
