package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras y sus líneas (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseSelect = `
	SELECT id, company_id, code, supplier_id, purchase_date, status, total_value, invoice_number, received_at, updated_at
	FROM purchases WHERE id = $1 AND company_id = $2`

func (r *PurchaseRepo) get(ctx context.Context, query, companyID, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	var supplierID, invoice *string
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Code, &supplierID, &p.PurchaseDate, &p.Status, &p.TotalValue,
		&invoice, &p.ReceivedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p.SupplierID = derefString(supplierID)
	p.InvoiceNumber = derefString(invoice)
	return &p, nil
}

// GetByID obtiene la compra de la empresa.
func (r *PurchaseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.get(ctx, purchaseSelect, companyID, id)
}

// GetForUpdate obtiene la compra y bloquea la cabecera (SELECT FOR UPDATE).
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.get(ctx, purchaseSelect+` FOR UPDATE`, companyID, id)
}

// ListItems líneas de la compra en orden de inserción.
func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, supply_id, ordered_qty, unit_price, received_qty, pending_qty, completed
		FROM purchase_items WHERE purchase_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.SupplyID, &it.OrderedQty, &it.UnitPrice,
			&it.ReceivedQty, &it.PendingQty, &it.Completed); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateItem guarda cantidades recibida y pendiente de la línea.
func (r *PurchaseRepo) UpdateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		UPDATE purchase_items SET received_qty = $2, pending_qty = $3, completed = $4
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, it.ID, it.ReceivedQty, it.PendingQty, it.Completed); err != nil {
		return fmt.Errorf("update purchase item: %w", err)
	}
	return nil
}

// UpdateReceipt guarda estado, factura y fecha de recepción de la cabecera.
func (r *PurchaseRepo) UpdateReceipt(ctx context.Context, p *entity.Purchase) error {
	query := `
		UPDATE purchases SET status = $2, invoice_number = $3, received_at = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, p.ID, p.Status, nullString(p.InvoiceNumber), p.ReceivedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("update purchase receipt: %w", err)
	}
	return nil
}
