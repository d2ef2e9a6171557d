package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/memory"
)

func seedStore() *memory.Store {
	st := memory.New()
	st.AddProduct(entity.Product{ID: "p-1", CompanyID: "c1", Name: "Pizza Margherita", Price: decimal.NewFromInt(50), Active: true}, 2, 3,
		entity.RecipeLine{SupplyID: "s-flour", Quantity: decimal.RequireFromString("0.3")},
		entity.RecipeLine{SupplyID: "s-cheese", Quantity: decimal.RequireFromString("0.2")},
	)
	st.AddProduct(entity.Product{ID: "p-2", CompanyID: "c1", Name: "Refrigerante", Price: decimal.NewFromInt(8), Active: true}, 1, 0)
	return st
}

func TestDeleteProduct_BorraRelacionesEnOrden(t *testing.T) {
	st := seedStore()
	uc := catalog.NewDeleteProductUseCase(st)

	resp, err := uc.DeleteProduct(context.Background(), "c1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.CategoryLinks)
	assert.Equal(t, int64(3), resp.Complements)
	assert.Equal(t, int64(2), resp.RecipeLines)

	counts := st.Counts()
	assert.Equal(t, 1, counts.Products)
	assert.Equal(t, 0, counts.RecipeLines)
}

func TestDeleteProduct_NoEncontrado(t *testing.T) {
	st := seedStore()
	uc := catalog.NewDeleteProductUseCase(st)

	_, err := uc.DeleteProduct(context.Background(), "c2", "p-1")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	_, err = uc.DeleteProduct(context.Background(), "c1", "p-x")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	assert.Equal(t, 2, st.Counts().Products)
}

func TestDeleteProduct_RollbackSiFallaElBorradoFinal(t *testing.T) {
	st := seedStore()
	uc := catalog.NewDeleteProductUseCase(st)
	st.FailOn("products.delete", errors.New("fk violation"))

	_, err := uc.DeleteProduct(context.Background(), "c1", "p-1")
	require.Error(t, err)

	counts := st.Counts()
	assert.Equal(t, 2, counts.Products)
	assert.Equal(t, 2, counts.RecipeLines, "la receta no se borra si el producto no se borra")
}
