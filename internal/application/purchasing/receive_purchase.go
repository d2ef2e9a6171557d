package purchasing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/inventory"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceivePurchaseUseCase recibe mercancía de una compra: actualiza stock y costo promedio
// ponderado por línea, registra el movimiento y avanza el estado de la compra.
type ReceivePurchaseUseCase struct {
	txRunner     TxRunner
	companyRepo  repository.CompanyRepository
	purchaseRepo repository.PurchaseRepository
	idemRepo     repository.IdempotencyRepository
	now          func() time.Time
}

// NewReceivePurchaseUseCase construye el caso de uso.
func NewReceivePurchaseUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	purchaseRepo repository.PurchaseRepository,
	idemRepo repository.IdempotencyRepository,
) *ReceivePurchaseUseCase {
	return &ReceivePurchaseUseCase{
		txRunner:     txRunner,
		companyRepo:  companyRepo,
		purchaseRepo: purchaseRepo,
		idemRepo:     idemRepo,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReceivePurchaseUseCase) WithClock(now func() time.Time) *ReceivePurchaseUseCase {
	uc.now = now
	return uc
}

// ReceivePurchase procesa las líneas con cantidad > 0 en una sola transacción.
// La compra queda FINALIZED solo si ninguna línea tiene cantidad pendiente; si no, PARTIAL.
func (uc *ReceivePurchaseUseCase) ReceivePurchase(
	ctx context.Context,
	companyID, userID, purchaseID string,
	in dto.ReceivePurchaseRequest,
) (*dto.PurchaseSummaryResponse, error) {
	if companyID == "" {
		return nil, domain.ErrTenantNotFound
	}
	if userID == "" {
		return nil, domain.WithDetail(domain.ErrInvalidInput, "usuario requerido")
	}
	if purchaseID == "" {
		return nil, domain.ErrPurchaseNotFound
	}
	if err := validateReceipt(in); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive() {
		return nil, domain.ErrTenantNotFound
	}

	if in.IdempotencyKey != "" {
		if resp, ok, err := uc.replay(ctx, companyID, purchaseID, in.IdempotencyKey); err != nil || ok {
			return resp, err
		}
	}

	now := uc.now()
	var resp *dto.PurchaseSummaryResponse

	err = uc.txRunner.RunReceiving(ctx, func(r ReceivingRepos) error {
		// Bloquea la cabecera: dos recepciones de la misma compra se serializan
		purchase, err := r.Purchases.GetForUpdate(ctx, companyID, purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrPurchaseNotFound
		}
		if !purchase.AcceptsReceipt() {
			return domain.WithDetail(domain.ErrPurchaseClosed, "estado %s", purchase.Status)
		}

		items, err := r.Purchases.ListItems(ctx, purchase.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.PurchaseItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		processed := 0
		for _, line := range in.Items {
			item, ok := byID[line.PurchaseItemID]
			if !ok {
				return domain.WithDetail(domain.ErrUnknownPurchaseItem, "ítem %s", line.PurchaseItemID)
			}
			if line.ReceivedQty.IsZero() {
				continue
			}
			if err := receiveLine(ctx, r, purchase, item, line, userID, in.InvoiceNumber, now); err != nil {
				return err
			}
			processed++
		}
		if processed == 0 {
			return domain.ErrNothingToReceive
		}

		// Estado de la compra
		purchase.Status = entity.PurchaseStatusFinalized
		for _, it := range items {
			if it.PendingQty.IsPositive() {
				purchase.Status = entity.PurchaseStatusPartial
				break
			}
		}
		if purchase.Status == entity.PurchaseStatusFinalized {
			purchase.ReceivedAt = &now
		}
		if in.InvoiceNumber != "" {
			purchase.InvoiceNumber = in.InvoiceNumber
		}
		purchase.UpdatedAt = now
		if err := r.Purchases.UpdateReceipt(ctx, purchase); err != nil {
			return err
		}

		resp = toSummary(purchase, items)
		if in.IdempotencyKey != "" {
			body, err := json.Marshal(resp)
			if err != nil {
				return fmt.Errorf("codificar respuesta idempotente: %w", err)
			}
			return r.Idempotency.Create(ctx, &entity.IdempotencyRecord{
				CompanyID:  companyID,
				Scope:      entity.IdempotencyScopeReceivePurchase,
				Key:        in.IdempotencyKey,
				ResourceID: purchase.ID,
				Response:   body,
				CreatedAt:  now,
			})
		}
		return nil
	})
	if err != nil {
		if in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			if prev, ok, rerr := uc.replay(ctx, companyID, purchaseID, in.IdempotencyKey); rerr == nil && ok {
				return prev, nil
			}
		}
		return nil, err
	}
	return resp, nil
}

// receiveLine aplica una línea: costo promedio, stock, movimiento IN y cantidades del ítem.
func receiveLine(
	ctx context.Context,
	r ReceivingRepos,
	purchase *entity.Purchase,
	item *entity.PurchaseItem,
	line dto.ReceiveItemRequest,
	userID, invoiceNumber string,
	now time.Time,
) error {
	if line.ReceivedQty.GreaterThan(item.PendingQty) {
		return domain.WithDetail(domain.ErrOverReceipt, "ítem %s: pendiente %s, recibido %s",
			item.ID, item.PendingQty.String(), line.ReceivedQty.String())
	}

	// Bloquea la fila del insumo (SELECT FOR UPDATE)
	supply, err := r.Supplies.GetForUpdate(ctx, purchase.CompanyID, item.SupplyID)
	if err != nil {
		return err
	}
	if supply == nil {
		return domain.WithDetail(domain.ErrSupplyNotFound, "insumo %s", item.SupplyID)
	}

	newStock, newCost, err := inventory.CostCalculator(supply.CurrentStock, supply.UnitCost, line.ReceivedQty, item.UnitPrice)
	if err != nil {
		return err
	}
	if err := r.Supplies.UpdateStockAndCost(ctx, supply.ID, newStock, newCost); err != nil {
		return err
	}

	if err := r.Movements.Create(ctx, &entity.StockMovement{
		ID:           uuid.New().String(),
		CompanyID:    purchase.CompanyID,
		SupplyID:     supply.ID,
		Type:         entity.MovementTypeIn,
		Quantity:     line.ReceivedQty,
		UnitCost:     item.UnitPrice,
		StockBefore:  supply.CurrentStock,
		StockAfter:   newStock,
		DocumentType: entity.DocumentTypePurchase,
		DocumentID:   purchase.ID,
		Note:         invoiceNumber,
		ActorID:      userID,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	item.ReceivedQty = item.ReceivedQty.Add(line.ReceivedQty)
	item.PendingQty = item.OrderedQty.Sub(item.ReceivedQty)
	if line.Complete || !item.PendingQty.IsPositive() {
		item.Completed = true
	}
	return r.Purchases.UpdateItem(ctx, item)
}

// GetPurchase devuelve el resumen de la compra con el estado de cada línea.
func (uc *ReceivePurchaseUseCase) GetPurchase(ctx context.Context, companyID, id string) (*dto.PurchaseSummaryResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.CompanyID != companyID {
		return nil, domain.ErrPurchaseNotFound
	}
	items, err := uc.purchaseRepo.ListItems(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}
	return toSummary(purchase, items), nil
}

func (uc *ReceivePurchaseUseCase) replay(ctx context.Context, companyID, purchaseID, key string) (*dto.PurchaseSummaryResponse, bool, error) {
	rec, err := uc.idemRepo.Get(ctx, companyID, entity.IdempotencyScopeReceivePurchase, key)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}
	if rec.ResourceID != purchaseID {
		return nil, false, domain.WithDetail(domain.ErrConflict, "clave de idempotencia usada para otra compra")
	}
	var resp dto.PurchaseSummaryResponse
	if err := json.Unmarshal(rec.Response, &resp); err != nil {
		return nil, false, fmt.Errorf("decodificar respuesta idempotente: %w", err)
	}
	return &resp, true, nil
}

func validateReceipt(in dto.ReceivePurchaseRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrNothingToReceive
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, line := range in.Items {
		if line.PurchaseItemID == "" {
			return domain.WithDetail(domain.ErrInvalidInput, "purchaseItemId requerido")
		}
		if _, dup := seen[line.PurchaseItemID]; dup {
			return domain.WithDetail(domain.ErrInvalidInput, "ítem %s repetido", line.PurchaseItemID)
		}
		seen[line.PurchaseItemID] = struct{}{}
		if line.ReceivedQty.IsNegative() {
			return domain.WithDetail(domain.ErrInvalidQuantity, "ítem %s: %s", line.PurchaseItemID, line.ReceivedQty.String())
		}
		if err := inventory.CheckQuantityScale(line.ReceivedQty); err != nil {
			return err
		}
	}
	return nil
}

func toSummary(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseSummaryResponse {
	out := &dto.PurchaseSummaryResponse{
		ID:            p.ID,
		Code:          p.Code,
		Status:        p.Status,
		InvoiceNumber: p.InvoiceNumber,
		TotalValue:    p.TotalValue,
		Items:         make([]dto.PurchaseItemSummary, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.PurchaseItemSummary{
			ID:          it.ID,
			SupplyID:    it.SupplyID,
			OrderedQty:  it.OrderedQty,
			ReceivedQty: it.ReceivedQty,
			PendingQty:  decimal.Max(it.PendingQty, decimal.Zero),
			Status:      it.Status(),
		})
	}
	return out
}
