package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, supply_id, type, quantity, unit_cost, stock_before, stock_after,
			document_type, document_id, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.SupplyID, m.Type, m.Quantity, m.UnitCost, m.StockBefore, m.StockAfter,
		m.DocumentType, nullString(m.DocumentID), nullString(m.Note), m.ActorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByDocument movimientos generados por un documento (ej. una compra).
func (r *StockMovementRepo) ListByDocument(ctx context.Context, companyID, documentType, documentID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, supply_id, type, quantity, unit_cost, stock_before, stock_after,
			document_type, document_id, note, actor_id, created_at
		FROM stock_movements
		WHERE company_id = $1 AND document_type = $2 AND document_id = $3
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID, documentType, documentID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var docID, note *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.SupplyID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.StockBefore, &m.StockAfter, &m.DocumentType, &docID, &note, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.DocumentID = derefString(docID)
		m.Note = derefString(note)
		list = append(list, &m)
	}
	return list, rows.Err()
}
