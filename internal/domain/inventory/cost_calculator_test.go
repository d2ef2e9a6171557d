package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator(t *testing.T) {
	cases := []struct {
		name                       string
		stock, cost, qty, price    string
		wantStock, wantCost        string
	}{
		{"promedio simple", "10", "2.00", "10", "4.00", "20", "3.00"},
		{"stock vacío toma precio de entrada", "0", "0", "5", "7.35", "5", "7.35"},
		{"redondeo mitad hacia arriba", "3", "1.00", "1", "1.02", "4", "1.01"},
		{"redondeo hacia abajo", "3", "1.00", "1", "1.01", "4", "1.00"},
		{"fraccionario", "2.5", "10", "0.5", "16", "3", "11.00"},
		{"stock negativo heredado vuelve a cero", "-4", "3.10", "4", "9.99", "0", "3.10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stock, cost, err := inventory.CostCalculator(d(tc.stock), d(tc.cost), d(tc.qty), d(tc.price))
			require.NoError(t, err)
			assert.True(t, d(tc.wantStock).Equal(stock), "stock esperado %s, obtenido %s", tc.wantStock, stock)
			assert.True(t, d(tc.wantCost).Equal(cost), "costo esperado %s, obtenido %s", tc.wantCost, cost)
		})
	}
}

func TestCostCalculator_CantidadCeroNoModifica(t *testing.T) {
	stock, cost, err := inventory.CostCalculator(d("7"), d("1.2345"), decimal.Zero, d("99"))
	require.NoError(t, err)
	assert.True(t, d("7").Equal(stock))
	assert.True(t, d("1.2345").Equal(cost), "sin entrada el costo no se redondea ni cambia")
}

func TestCostCalculator_CantidadNegativa(t *testing.T) {
	_, _, err := inventory.CostCalculator(d("7"), d("1"), d("-1"), d("1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestIssue(t *testing.T) {
	left, err := inventory.Issue(d("10"), d("4"))
	require.NoError(t, err)
	assert.True(t, d("6").Equal(left))

	_, err = inventory.Issue(d("3"), d("4"))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = inventory.Issue(d("3"), decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestCheckQuantityScale(t *testing.T) {
	for _, ok := range []string{"1", "0.001", "12.345", "2.5000"} {
		assert.NoError(t, inventory.CheckQuantityScale(d(ok)), ok)
	}
	for _, bad := range []string{"0.0004", "1.0005", "-3.1234"} {
		err := inventory.CheckQuantityScale(d(bad))
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), bad)
	}
}
