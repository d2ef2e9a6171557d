package ordering_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type captureDispatcher struct {
	calls [][]*entity.Notification
}

func (c *captureDispatcher) Dispatch(_ context.Context, n []*entity.Notification) {
	c.calls = append(c.calls, n)
}

func seedStore() *memory.Store {
	st := memory.New()
	st.AddCompany(entity.Company{ID: "c1", Name: "Pizzaria Centro", Status: "active"})
	st.AddCompany(entity.Company{ID: "c2", Name: "Otra", Status: "active"})
	st.AddCompany(entity.Company{ID: "c-off", Name: "Suspendida", Status: "suspended"})
	st.AddUser(entity.User{ID: "u-admin", CompanyID: "c1", Role: entity.RoleAdmin, Status: "active"})
	st.AddUser(entity.User{ID: "u-mgr", CompanyID: "c1", Role: entity.RoleManager, Status: "active"})
	st.AddUser(entity.User{ID: "u-op", CompanyID: "c1", Role: entity.RoleOperator, Status: "active"})
	st.AddUser(entity.User{ID: "u-old", CompanyID: "c1", Role: entity.RoleAdmin, Status: "inactive"})
	st.AddUser(entity.User{ID: "u-c2", CompanyID: "c2", Role: entity.RoleAdmin, Status: "active"})
	st.AddPaymentMethod(entity.PaymentMethod{ID: "pm-cash", CompanyID: "c1", Code: "cash", Name: "Efectivo", AcceptsChange: true, Active: true})
	st.AddPaymentMethod(entity.PaymentMethod{ID: "pm-pix", CompanyID: "c1", Code: "pix", Name: "PIX", Active: true})
	st.AddPaymentMethod(entity.PaymentMethod{ID: "pm-off", CompanyID: "c1", Code: "card", Name: "Tarjeta", Active: false})
	st.AddPaymentMethod(entity.PaymentMethod{ID: "pm-c2", CompanyID: "c2", Code: "cash", Name: "Efectivo", Active: true})
	st.AddCity(entity.City{ID: "city-1", Code: "3550308", Name: "São Paulo", State: "SP"})
	maxUses := 5
	st.AddCoupon(entity.Coupon{ID: "cp10", CompanyID: "c1", Code: "DEZ", DiscountType: entity.DiscountTypePercentage, DiscountValue: d("10"), MaxUses: &maxUses, Active: true})
	one := 1
	st.AddCoupon(entity.Coupon{ID: "cp-last", CompanyID: "c1", Code: "ULTIMO", DiscountType: entity.DiscountTypeFixed, DiscountValue: d("5"), MaxUses: &one, Active: true})
	return st
}

func newUseCase(st *memory.Store, disp ordering.NotificationDispatcher) *ordering.CreateOrderUseCase {
	return ordering.NewCreateOrderUseCase(
		st, st.Companies(), st.PaymentMethods(), st.Idempotency(), st.Orders(), st.Coupons(),
		disp, ordering.Config{},
	).WithClock(func() time.Time { return fixedNow })
}

// pickupRequest pedido para retirar: 2 x 50.00 con cupón del 10%.
func pickupRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Type:     entity.OrderTypePickup,
		Customer: dto.OrderCustomer{Name: "Ana", Phone: "11999990000"},
		Pickup:   &dto.OrderPickup{Note: "19h"},
		Payment:  dto.OrderPayment{MethodID: "pm-pix"},
		Items: []dto.OrderItemRequest{
			{ProductID: "p-pizza", Quantity: d("2"), UnitPrice: d("50.00"), LineTotal: d("100.00")},
		},
		ItemsValue: d("100.00"),
		TotalValue: d("90.00"),
		Coupon:     &dto.OrderCoupon{ID: "cp10", DiscountValue: d("10.00")},
	}
}

func TestCreateOrder_PickupConCupon(t *testing.T) {
	st := seedStore()
	disp := &captureDispatcher{}
	uc := newUseCase(st, disp)

	resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", pickupRequest())
	require.NoError(t, err)

	assert.Equal(t, "PKP-20261014-000001", resp.Number)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.True(t, resp.TotalValue.Equal(d("90.00")))

	cp, _ := st.Coupon("cp10")
	assert.Equal(t, 1, cp.CurrentUses)

	counts := st.Counts()
	assert.Equal(t, 1, counts.Orders)
	assert.Equal(t, 1, counts.OrderItems)
	assert.Equal(t, 1, counts.StatusHistory)
	assert.Equal(t, 1, counts.Redemptions)
	assert.Equal(t, 0, counts.Addresses, "PICKUP no crea dirección")
	// admin y manager activos de c1; operador, inactivos y otras empresas no
	assert.Equal(t, 2, counts.Notifications)

	require.Len(t, disp.calls, 1)
	require.Len(t, disp.calls[0], 2)
	n := disp.calls[0][0]
	assert.Equal(t, "Nuevo pedido "+resp.Number, n.Title)
	assert.Contains(t, n.Message, "Retiro en local")
	assert.Contains(t, n.Message, "Cliente: Ana")
	assert.Contains(t, n.Message, "Pago: PIX")
	assert.Contains(t, n.Message, "Total: R$ 90,00")
	assert.Equal(t, "/orders/"+resp.OrderID, n.URL)
	assert.False(t, n.Read)
}

func TestCreateOrder_DescuentoForjado(t *testing.T) {
	st := seedStore()
	disp := &captureDispatcher{}
	uc := newUseCase(st, disp)

	in := pickupRequest()
	in.Coupon.DiscountValue = d("15.00")
	in.TotalValue = d("85.00")

	_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCouponDiscountMismatch))

	cp, _ := st.Coupon("cp10")
	assert.Equal(t, 0, cp.CurrentUses)
	assert.Equal(t, memory.Counts{}, st.Counts())
	assert.Empty(t, disp.calls)
}

func TestCreateOrder_DeliveryConEnvioYCambio(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, &captureDispatcher{})

	in := dto.CreateOrderRequest{
		Type:     entity.OrderTypeDelivery,
		Customer: dto.OrderCustomer{Name: "Bruno", Phone: "11888880000"},
		Delivery: &dto.OrderDelivery{Street: "Rua A", Number: "10", Neighborhood: "Centro", CityID: "city-1"},
		Payment:  dto.OrderPayment{MethodID: "pm-cash", ChangeAmount: dp("150.00")},
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Quantity: d("1"), UnitPrice: d("60.00"), LineTotal: d("60.00")},
			{ProductID: "p-2", Quantity: d("2"), UnitPrice: d("20.00"), LineTotal: d("40.00"), Options: []byte(`{"borda":"catupiry"}`)},
		},
		ItemsValue:  d("100.00"),
		DeliveryFee: d("8.00"),
		TotalValue:  d("108.00"),
	}
	resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Number, "DLV-20261014-"))
	assert.True(t, resp.TotalValue.Equal(d("108.00")))

	order, err := uc.GetOrder(context.Background(), "c1", resp.OrderID)
	require.NoError(t, err)
	assert.NotEmpty(t, order.DeliveryAddressID)
	require.NotNil(t, order.ChangeAmount)
	assert.True(t, order.ChangeAmount.Equal(d("150.00")))
	require.Len(t, order.Items, 2)
	assert.JSONEq(t, `{"borda":"catupiry"}`, string(order.Items[1].Options))
	assert.Equal(t, 1, st.Counts().Addresses)
}

func TestCreateOrder_ReglaDeCambio(t *testing.T) {
	t.Run("efectivo con cambio menor al total", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.Payment = dto.OrderPayment{MethodID: "pm-cash", ChangeAmount: dp("50.00")}

		_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		assert.True(t, errors.Is(err, domain.ErrInvalidChangeAmount))
		assert.Equal(t, 0, st.Counts().Orders)
	})
	t.Run("efectivo con cambio igual al total", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.Payment = dto.OrderPayment{MethodID: "pm-cash", ChangeAmount: dp("90.00")}

		_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		assert.True(t, errors.Is(err, domain.ErrInvalidChangeAmount))
	})
	t.Run("cambio se compara con el total calculado, no con el informado", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.TotalValue = d("90.40") // dentro de la tolerancia; el calculado es 90.00
		in.Payment = dto.OrderPayment{MethodID: "pm-cash", ChangeAmount: dp("90.20")}

		resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		require.NoError(t, err)
		assert.True(t, resp.TotalValue.Equal(d("90.00")))

		order, err := uc.GetOrder(context.Background(), "c1", resp.OrderID)
		require.NoError(t, err)
		require.NotNil(t, order.ChangeAmount)
		assert.True(t, order.ChangeAmount.Equal(d("90.20")))
	})
	t.Run("forma de pago sin cambio descarta el valor", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.Payment = dto.OrderPayment{MethodID: "pm-pix", ChangeAmount: dp("10.00")}

		resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		require.NoError(t, err)
		order, err := uc.GetOrder(context.Background(), "c1", resp.OrderID)
		require.NoError(t, err)
		assert.Nil(t, order.ChangeAmount)
	})
}

func TestCreateOrder_FormaDePagoInvalida(t *testing.T) {
	for _, methodID := range []string{"pm-off", "pm-c2", "no-existe"} {
		t.Run(methodID, func(t *testing.T) {
			st := seedStore()
			uc := newUseCase(st, nil)
			in := pickupRequest()
			in.Payment.MethodID = methodID

			_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
			assert.True(t, errors.Is(err, domain.ErrInvalidPaymentMethod))
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestCreateOrder_EmpresaNoResuelta(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)

	for _, companyID := range []string{"", "no-existe", "c-off"} {
		_, err := uc.CreateOrder(context.Background(), companyID, "u-op", pickupRequest())
		assert.True(t, errors.Is(err, domain.ErrTenantNotFound), companyID)
	}
}

func TestCreateOrder_CuponAgotado(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)

	in := pickupRequest()
	in.Coupon = &dto.OrderCoupon{ID: "cp-last", DiscountValue: d("5.00")}
	in.TotalValue = d("95.00")

	// El último uso disponible se acepta
	_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
	cp, _ := st.Coupon("cp-last")
	assert.Equal(t, 1, cp.CurrentUses)

	// El siguiente ya no
	_, err = uc.CreateOrder(context.Background(), "c1", "u-op", in)
	assert.True(t, errors.Is(err, domain.ErrCouponExhausted))
	cp, _ = st.Coupon("cp-last")
	assert.Equal(t, 1, cp.CurrentUses)
	assert.Equal(t, 1, st.Counts().Orders)
}

func TestCreateOrder_CuponDeOtraEmpresa(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)

	in := pickupRequest()
	in.Payment.MethodID = "pm-c2"
	_, err := uc.CreateOrder(context.Background(), "c2", "u-c2", in)
	assert.True(t, errors.Is(err, domain.ErrCouponInvalid))
}

func TestCreateOrder_TotalesNoCoinciden(t *testing.T) {
	t.Run("total informado", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.TotalValue = d("95.00")

		_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		assert.True(t, errors.Is(err, domain.ErrTotalsMismatch))
	})
	t.Run("suma de líneas", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.ItemsValue = d("120.00")

		_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		assert.True(t, errors.Is(err, domain.ErrTotalsMismatch))
	})
	t.Run("dentro de la tolerancia", func(t *testing.T) {
		st := seedStore()
		uc := newUseCase(st, nil)
		in := pickupRequest()
		in.TotalValue = d("90.40")

		resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
		require.NoError(t, err)
		assert.True(t, resp.TotalValue.Equal(d("90.00")), "se persiste el total calculado")
	})
}

func TestCreateOrder_EntradaInvalida(t *testing.T) {
	cases := map[string]func(*dto.CreateOrderRequest){
		"sin ítems":          func(in *dto.CreateOrderRequest) { in.Items = nil },
		"cantidad cero":      func(in *dto.CreateOrderRequest) { in.Items[0].Quantity = decimal.Zero },
		"delivery sin datos": func(in *dto.CreateOrderRequest) { in.Type = entity.OrderTypeDelivery },
		"tipo desconocido":   func(in *dto.CreateOrderRequest) { in.Type = "DRONE" },
		"sin teléfono":       func(in *dto.CreateOrderRequest) { in.Customer.Phone = "" },
		"envío negativo":     func(in *dto.CreateOrderRequest) { in.DeliveryFee = d("-1") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			st := seedStore()
			uc := newUseCase(st, nil)
			in := pickupRequest()
			mutate(&in)

			_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestCreateOrder_Idempotente(t *testing.T) {
	st := seedStore()
	disp := &captureDispatcher{}
	uc := newUseCase(st, disp)

	in := pickupRequest()
	in.IdempotencyKey = "checkout-123"

	first, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
	second, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Number, second.Number)
	assert.True(t, first.TotalValue.Equal(second.TotalValue))

	cp, _ := st.Coupon("cp10")
	assert.Equal(t, 1, cp.CurrentUses, "un solo uso de cupón por pedido lógico")
	counts := st.Counts()
	assert.Equal(t, 1, counts.Orders)
	assert.Equal(t, 1, counts.Redemptions)
	assert.Equal(t, 1, counts.Idempotency)
	assert.Len(t, disp.calls, 1)

	// La misma clave en otra empresa es independiente
	in.Coupon = nil
	in.TotalValue = d("100.00")
	in.Payment.MethodID = "pm-c2"
	other, err := uc.CreateOrder(context.Background(), "c2", "u-c2", in)
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderID, other.OrderID)
}

func TestCreateOrder_RollbackAnteFallaTardia(t *testing.T) {
	st := seedStore()
	disp := &captureDispatcher{}
	uc := newUseCase(st, disp)
	st.FailOn("notifications.create", errors.New("disk full"))

	_, err := uc.CreateOrder(context.Background(), "c1", "u-op", pickupRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))

	assert.Equal(t, memory.Counts{}, st.Counts())
	cp, _ := st.Coupon("cp10")
	assert.Equal(t, 0, cp.CurrentUses)
	assert.Empty(t, disp.calls, "no se despacha nada si no hubo Commit")

	// Recuperado el store, el consecutivo no quedó consumido
	st.FailOn("notifications.create", nil)
	resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", pickupRequest())
	require.NoError(t, err)
	assert.Equal(t, "PKP-20261014-000001", resp.Number)
}

func TestCreateOrder_ContextoCancelado(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.CreateOrder(ctx, "c1", "u-op", pickupRequest())
	require.Error(t, err)
	assert.Equal(t, 0, st.Counts().Orders)
}

func TestCreateOrder_ConsecutivoPorEmpresa(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)

	in := pickupRequest()
	in.Coupon = nil
	in.TotalValue = d("100.00")

	a, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
	b, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
	in.Payment.MethodID = "pm-c2"
	c, err := uc.CreateOrder(context.Background(), "c2", "u-c2", in)
	require.NoError(t, err)

	assert.Equal(t, "PKP-20261014-000001", a.Number)
	assert.Equal(t, "PKP-20261014-000002", b.Number)
	assert.Equal(t, "PKP-20261014-000001", c.Number)
}

func TestGetOrder(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)

	resp, err := uc.CreateOrder(context.Background(), "c1", "u-op", pickupRequest())
	require.NoError(t, err)

	order, err := uc.GetOrder(context.Background(), "c1", resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, resp.Number, order.Number)
	assert.Equal(t, "cp10", order.CouponID)
	assert.True(t, order.DiscountValue.Equal(d("10.00")))
	assert.True(t, order.DeliveryFee.IsZero())
	require.Len(t, order.History, 1)
	assert.Empty(t, order.History[0].FromStatus)
	assert.Equal(t, entity.OrderStatusPending, order.History[0].ToStatus)

	_, err = uc.GetOrder(context.Background(), "c2", resp.OrderID)
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}

func TestCreateOrder_CantidadConDemasiadosDecimales(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st, nil)
	in := pickupRequest()
	in.Items[0].Quantity = d("2.0004")

	_, err := uc.CreateOrder(context.Background(), "c1", "u-op", in)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "got %v", err)
	assert.Equal(t, 0, st.Counts().Orders)

	in = pickupRequest()
	in.Items[0].Quantity = d("2.0000")
	_, err = uc.CreateOrder(context.Background(), "c1", "u-op", in)
	require.NoError(t, err)
}
