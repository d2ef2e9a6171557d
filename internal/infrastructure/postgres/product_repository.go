package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, name, price, active, created_at, updated_at
		FROM products WHERE id = $1 AND company_id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) deleteWhere(ctx context.Context, table, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteCategoryLinks borra los vínculos del producto con categorías.
func (r *ProductRepo) DeleteCategoryLinks(ctx context.Context, productID string) (int64, error) {
	return r.deleteWhere(ctx, "product_categories", productID)
}

// DeleteComplements borra los complementos del producto.
func (r *ProductRepo) DeleteComplements(ctx context.Context, productID string) (int64, error) {
	return r.deleteWhere(ctx, "product_complements", productID)
}

// DeleteRecipe borra las líneas de receta del producto.
func (r *ProductRepo) DeleteRecipe(ctx context.Context, productID string) (int64, error) {
	return r.deleteWhere(ctx, "recipe_lines", productID)
}

// Delete elimina el producto; ErrProductNotFound si no había fila.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
