package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedStore compra PO-1 con dos líneas: 50 kg de harina a 4.00 y 10 l de aceite a 12.00.
func seedStore() *memory.Store {
	st := memory.New()
	st.AddCompany(entity.Company{ID: "c1", Name: "Pizzaria Centro", Status: "active"})
	st.AddCompany(entity.Company{ID: "c2", Name: "Otra", Status: "active"})
	st.AddSupply(entity.Supply{ID: "s-flour", CompanyID: "c1", Name: "Harina", Unit: "kg", CurrentStock: d("10"), UnitCost: d("2.00"), MinStock: d("20")})
	st.AddSupply(entity.Supply{ID: "s-oil", CompanyID: "c1", Name: "Aceite", Unit: "l", CurrentStock: d("0"), UnitCost: d("0"), MinStock: d("5")})
	st.AddPurchase(
		entity.Purchase{ID: "po-1", CompanyID: "c1", Code: "PO-1", Status: entity.PurchaseStatusPending, TotalValue: d("320.00")},
		entity.PurchaseItem{ID: "pi-flour", SupplyID: "s-flour", OrderedQty: d("50"), UnitPrice: d("4.00")},
		entity.PurchaseItem{ID: "pi-oil", SupplyID: "s-oil", OrderedQty: d("10"), UnitPrice: d("12.00")},
	)
	st.AddPurchase(entity.Purchase{ID: "po-done", CompanyID: "c1", Code: "PO-2", Status: entity.PurchaseStatusFinalized})
	st.AddPurchase(entity.Purchase{ID: "po-cancel", CompanyID: "c1", Code: "PO-3", Status: entity.PurchaseStatusCancelled})
	return st
}

func newUseCase(st *memory.Store) *purchasing.ReceivePurchaseUseCase {
	return purchasing.NewReceivePurchaseUseCase(st, st.Companies(), st.Purchases(), st.Idempotency()).
		WithClock(func() time.Time { return fixedNow })
}

func receive(lines ...dto.ReceiveItemRequest) dto.ReceivePurchaseRequest {
	return dto.ReceivePurchaseRequest{Items: lines}
}

func TestReceivePurchase_ParcialYCostoPromedio(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	// 10 kg a 2.00 en stock + 10 kg a 4.00 recibidos = 20 kg a 3.00
	resp, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1",
		receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("10")}))
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusPartial, resp.Status)
	flour, _ := st.Supply("s-flour")
	assert.True(t, flour.CurrentStock.Equal(d("20")))
	assert.True(t, flour.UnitCost.Equal(d("3.00")), flour.UnitCost.String())

	require.Len(t, resp.Items, 2)
	assert.Equal(t, entity.PurchaseItemStatusPartial, resp.Items[0].Status)
	assert.True(t, resp.Items[0].ReceivedQty.Equal(d("10")))
	assert.True(t, resp.Items[0].PendingQty.Equal(d("40")))
	assert.Equal(t, entity.PurchaseItemStatusPending, resp.Items[1].Status)

	movs := st.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, entity.DocumentTypePurchase, movs[0].DocumentType)
	assert.Equal(t, "po-1", movs[0].DocumentID)
	assert.Equal(t, "u-1", movs[0].ActorID)
	assert.True(t, movs[0].StockBefore.Equal(d("10")))
	assert.True(t, movs[0].StockAfter.Equal(d("20")))
}

func TestReceivePurchase_Finaliza(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	resp, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{PurchaseItemID: "pi-flour", ReceivedQty: d("50")},
			{PurchaseItemID: "pi-oil", ReceivedQty: d("10")},
		},
		InvoiceNumber: "NF-991",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusFinalized, resp.Status)
	assert.Equal(t, "NF-991", resp.InvoiceNumber)
	for _, it := range resp.Items {
		assert.Equal(t, entity.PurchaseItemStatusReceived, it.Status)
		assert.True(t, it.PendingQty.IsZero())
		assert.True(t, it.ReceivedQty.Equal(it.OrderedQty))
	}

	oil, _ := st.Supply("s-oil")
	assert.True(t, oil.CurrentStock.Equal(d("10")))
	assert.True(t, oil.UnitCost.Equal(d("12.00")))
	assert.Len(t, st.Movements(), 2, "un movimiento por línea")

	// Una compra finalizada no admite más recepciones
	_, err = uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1",
		receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-oil", ReceivedQty: d("1")}))
	assert.True(t, errors.Is(err, domain.ErrPurchaseClosed))
}

func TestReceivePurchase_SobreRecepcion(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	_, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1",
		receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("20")}))
	require.NoError(t, err)

	// pedido 50, recibido 20, intenta 40
	_, err = uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{PurchaseItemID: "pi-oil", ReceivedQty: d("5")},
			{PurchaseItemID: "pi-flour", ReceivedQty: d("40")},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOverReceipt))
	assert.Equal(t, domain.KindBusinessRule, domain.KindOf(err))

	// Rollback completo: la línea de aceite procesada antes tampoco quedó
	oil, _ := st.Supply("s-oil")
	assert.True(t, oil.CurrentStock.IsZero())
	assert.Len(t, st.Movements(), 1)
	for _, it := range st.PurchaseItems("po-1") {
		assert.True(t, it.ReceivedQty.Add(it.PendingQty).Equal(it.OrderedQty))
		assert.True(t, it.ReceivedQty.LessThanOrEqual(it.OrderedQty))
	}
}

func TestReceivePurchase_MarcarCompleta(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	resp, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{PurchaseItemID: "pi-flour", ReceivedQty: d("45"), Complete: true},
			{PurchaseItemID: "pi-oil", ReceivedQty: d("10")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseItemStatusReceived, resp.Items[0].Status)
	assert.True(t, resp.Items[0].PendingQty.Equal(d("5")), "la cantidad pendiente no se altera")
	// FINALIZED exige pendiente cero en todas las líneas
	assert.Equal(t, entity.PurchaseStatusPartial, resp.Status)
}

func TestReceivePurchase_NadaQueRecibir(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	_, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1",
		receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: decimal.Zero, Complete: true}))
	assert.True(t, errors.Is(err, domain.ErrNothingToReceive))

	_, err = uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", receive())
	assert.True(t, errors.Is(err, domain.ErrNothingToReceive))
	assert.Empty(t, st.Movements())
}

func TestReceivePurchase_Errores(t *testing.T) {
	cases := []struct {
		name       string
		companyID  string
		purchaseID string
		in         dto.ReceivePurchaseRequest
		want       error
	}{
		{"compra inexistente", "c1", "po-x", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("1")}), domain.ErrPurchaseNotFound},
		{"compra de otra empresa", "c2", "po-1", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("1")}), domain.ErrPurchaseNotFound},
		{"compra finalizada", "c1", "po-done", receive(dto.ReceiveItemRequest{PurchaseItemID: "x", ReceivedQty: d("1")}), domain.ErrPurchaseClosed},
		{"compra cancelada", "c1", "po-cancel", receive(dto.ReceiveItemRequest{PurchaseItemID: "x", ReceivedQty: d("1")}), domain.ErrPurchaseClosed},
		{"ítem ajeno", "c1", "po-1", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-otro", ReceivedQty: d("1")}), domain.ErrUnknownPurchaseItem},
		{"cantidad negativa", "c1", "po-1", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("-1")}), domain.ErrInvalidQuantity},
		{"más de tres decimales", "c1", "po-1", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("0.0004")}), domain.ErrInvalidQuantity},
		{"ítem repetido", "c1", "po-1", receive(
			dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("1")},
			dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("1")},
		), domain.ErrInvalidInput},
		{"sin empresa", "", "po-1", receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("1")}), domain.ErrTenantNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := seedStore()
			uc := newUseCase(st)
			_, err := uc.ReceivePurchase(context.Background(), tc.companyID, "u-1", tc.purchaseID, tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Empty(t, st.Movements())
		})
	}
}

func TestReceivePurchase_RollbackAnteFallaTardia(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)
	st.FailOn("purchases.update_receipt", errors.New("connection reset"))

	_, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1",
		receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("10")}))
	require.Error(t, err)
	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))

	flour, _ := st.Supply("s-flour")
	assert.True(t, flour.CurrentStock.Equal(d("10")))
	assert.True(t, flour.UnitCost.Equal(d("2.00")))
	assert.Empty(t, st.Movements())
}

func TestReceivePurchase_Idempotente(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	in := receive(dto.ReceiveItemRequest{PurchaseItemID: "pi-flour", ReceivedQty: d("10")})
	in.IdempotencyKey = "rcv-1"

	first, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", in)
	require.NoError(t, err)
	second, err := uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-1", in)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	flour, _ := st.Supply("s-flour")
	assert.True(t, flour.CurrentStock.Equal(d("20")), "la repetición no vuelve a sumar stock")
	assert.Len(t, st.Movements(), 1)

	// La misma clave para otra compra es un conflicto
	_, err = uc.ReceivePurchase(context.Background(), "c1", "u-1", "po-done", in)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestGetPurchase(t *testing.T) {
	st := seedStore()
	uc := newUseCase(st)

	resp, err := uc.GetPurchase(context.Background(), "c1", "po-1")
	require.NoError(t, err)
	assert.Equal(t, "PO-1", resp.Code)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].PendingQty.Equal(d("50")))

	_, err = uc.GetPurchase(context.Background(), "c2", "po-1")
	assert.True(t, errors.Is(err, domain.ErrPurchaseNotFound))
}
