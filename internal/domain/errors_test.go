package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
)

func TestWithDetail_ConservaCodigo(t *testing.T) {
	err := domain.WithDetail(domain.ErrOverReceipt, "pendiente %s, recibido %s", "30", "40")

	assert.True(t, errors.Is(err, domain.ErrOverReceipt))
	assert.False(t, errors.Is(err, domain.ErrNothingToReceive))
	assert.Contains(t, err.Error(), "pendiente 30")
	assert.Empty(t, domain.ErrOverReceipt.Detail, "el sentinel no debe mutar")
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"validación", domain.ErrInvalidInput, domain.KindValidation},
		{"regla", domain.ErrCouponExpired, domain.KindBusinessRule},
		{"no encontrado", domain.ErrPurchaseNotFound, domain.KindNotFound},
		{"conflicto", domain.ErrPurchaseClosed, domain.KindConflict},
		{"envuelto", fmt.Errorf("crear pedido: %w", domain.ErrCouponInvalid), domain.KindBusinessRule},
		{"driver", errors.New("connection reset"), domain.KindPersistence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.KindOf(tc.err))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "COUPON_EXHAUSTED", domain.CodeOf(fmt.Errorf("x: %w", domain.ErrCouponExhausted)))
	assert.Equal(t, "INTERNAL", domain.CodeOf(errors.New("boom")))
}
