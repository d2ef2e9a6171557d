package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// GetForUpdate obtiene el insumo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *SupplyRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Supply, error) {
	query := `
		SELECT id, company_id, name, unit, current_stock, unit_cost, min_stock, updated_at
		FROM supplies WHERE id = $1 AND company_id = $2
		FOR UPDATE`
	var s entity.Supply
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Unit, &s.CurrentStock, &s.UnitCost, &s.MinStock, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply for update: %w", err)
	}
	return &s, nil
}

// UpdateStockAndCost escribe stock y costo promedio. El CHECK de la tabla impide stock negativo.
func (r *SupplyRepo) UpdateStockAndCost(ctx context.Context, id string, stock, unitCost decimal.Decimal) error {
	query := `UPDATE supplies SET current_stock = $2, unit_cost = $3, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, stock, unitCost); err != nil {
		return fmt.Errorf("update supply stock: %w", err)
	}
	return nil
}

// ListBelowMinStock insumos de la empresa con stock menor al mínimo.
func (r *SupplyRepo) ListBelowMinStock(ctx context.Context, companyID string) ([]*entity.Supply, error) {
	query := `
		SELECT id, company_id, name, unit, current_stock, unit_cost, min_stock, updated_at
		FROM supplies
		WHERE company_id = $1 AND min_stock > 0 AND current_stock < min_stock
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list supplies below min: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Unit, &s.CurrentStock, &s.UnitCost, &s.MinStock, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
