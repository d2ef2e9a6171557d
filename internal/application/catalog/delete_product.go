package catalog

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

// TxRunner ejecuta el borrado de un producto en una sola transacción.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// DeleteProductUseCase borra un producto y sus relaciones en orden explícito:
// categorías, complementos, receta y por último el producto.
type DeleteProductUseCase struct {
	txRunner TxRunner
}

// NewDeleteProductUseCase construye el caso de uso.
func NewDeleteProductUseCase(txRunner TxRunner) *DeleteProductUseCase {
	return &DeleteProductUseCase{txRunner: txRunner}
}

// DeleteProduct devuelve cuántas filas relacionadas se borraron. Si algún paso falla no se borra nada.
func (uc *DeleteProductUseCase) DeleteProduct(ctx context.Context, companyID, productID string) (*dto.DeleteProductResponse, error) {
	if companyID == "" {
		return nil, domain.ErrTenantNotFound
	}
	if productID == "" {
		return nil, domain.ErrProductNotFound
	}
	resp := &dto.DeleteProductResponse{ProductID: productID}
	err := uc.txRunner.RunCatalog(ctx, func(products repository.ProductRepository) error {
		product, err := products.GetByID(ctx, companyID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if resp.CategoryLinks, err = products.DeleteCategoryLinks(ctx, product.ID); err != nil {
			return err
		}
		if resp.Complements, err = products.DeleteComplements(ctx, product.ID); err != nil {
			return err
		}
		if resp.RecipeLines, err = products.DeleteRecipe(ctx, product.ID); err != nil {
			return err
		}
		return products.Delete(ctx, product.ID)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
