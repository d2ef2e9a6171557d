package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos manuales de insumos (OUT, DISCARD, PRODUCTION, ADJUST)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// RegisterMovement aplica el movimiento y devuelve el stock resultante.
// Salidas (OUT, DISCARD, PRODUCTION) usan cantidad positiva y no cambian el costo promedio.
// ADJUST positivo es una entrada (recosteo con unitCost si llega); negativo, una salida.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if companyID == "" {
		return nil, domain.ErrTenantNotFound
	}
	if in.SupplyID == "" {
		return nil, domain.WithDetail(domain.ErrInvalidInput, "supplyId requerido")
	}
	switch in.Type {
	case entity.MovementTypeOut, entity.MovementTypeDiscard, entity.MovementTypeProduction:
		if !in.Quantity.IsPositive() {
			return nil, domain.WithDetail(domain.ErrInvalidQuantity, "la salida requiere cantidad positiva")
		}
	case entity.MovementTypeAdjust:
		if in.Quantity.IsZero() {
			return nil, domain.WithDetail(domain.ErrInvalidQuantity, "ajuste en cero")
		}
		if in.UnitCost != nil && in.UnitCost.IsNegative() {
			return nil, domain.WithDetail(domain.ErrInvalidInput, "costo unitario negativo")
		}
	default:
		return nil, domain.WithDetail(domain.ErrInvalidInput, "tipo de movimiento %q", in.Type)
	}
	if err := inventory.CheckQuantityScale(in.Quantity); err != nil {
		return nil, err
	}

	now := uc.now()
	var resp *dto.MovementResponse

	err := uc.txRunner.RunInventory(ctx, func(r InventoryRepos) error {
		// Bloquea la fila del insumo para evitar condiciones de carrera
		supply, err := r.Supplies.GetForUpdate(ctx, companyID, in.SupplyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.ErrSupplyNotFound
		}

		var newStock, newCost, qty decimal.Decimal
		movCost := supply.UnitCost
		if in.Type == entity.MovementTypeAdjust && in.Quantity.IsPositive() {
			if in.UnitCost != nil {
				movCost = *in.UnitCost
			}
			newStock, newCost, err = inventory.CostCalculator(supply.CurrentStock, supply.UnitCost, in.Quantity, movCost)
			qty = in.Quantity
		} else {
			out := in.Quantity.Abs()
			newStock, err = inventory.Issue(supply.CurrentStock, out)
			newCost = supply.UnitCost
			qty = out.Neg()
		}
		if err != nil {
			return err
		}

		if err := r.Supplies.UpdateStockAndCost(ctx, supply.ID, newStock, newCost); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			SupplyID:     supply.ID,
			Type:         in.Type,
			Quantity:     qty,
			UnitCost:     movCost,
			StockBefore:  supply.CurrentStock,
			StockAfter:   newStock,
			DocumentType: entity.DocumentTypeManual,
			Note:         in.Note,
			ActorID:      userID,
			CreatedAt:    now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
		resp = &dto.MovementResponse{
			MovementID:   mov.ID,
			SupplyID:     supply.ID,
			CurrentStock: newStock,
			UnitCost:     newCost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
