package inventory

import (
	"context"
	"sort"

	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera la lista de reposición de insumos de una empresa.
type ReplenishmentUseCase struct {
	supplyRepo repository.SupplyRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(supplyRepo repository.SupplyRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{supplyRepo: supplyRepo}
}

// GenerateReplenishmentList devuelve los insumos bajo el stock mínimo con la cantidad sugerida
// (mínimo * 1.5 - actual), el costo estimado y la prioridad por déficit relativo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if companyID == "" {
		return nil, domain.ErrTenantNotFound
	}

	// 1. Insumos por debajo del mínimo
	supplies, err := uc.supplyRepo.ListBelowMinStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(supplies) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Construir los DTOs
	hundred := decimal.NewFromInt(100)
	factor := decimal.RequireFromString("1.5")

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(supplies))
	for _, s := range supplies {
		if !s.BelowMinimum() {
			continue
		}
		idealStock := s.MinStock.Mul(factor)
		suggestedQty := idealStock.Sub(s.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		deficitPct := decimal.Zero
		if s.MinStock.IsPositive() {
			deficitPct = s.MinStock.Sub(s.CurrentStock).Div(s.MinStock).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			SupplyID:      s.ID,
			Name:          s.Name,
			Unit:          s.Unit,
			CurrentStock:  s.CurrentStock,
			MinStock:      s.MinStock,
			IdealStock:    idealStock,
			SuggestedQty:  suggestedQty,
			UnitCost:      s.UnitCost,
			EstimatedCost: suggestedQty.Mul(s.UnitCost).Round(2),
			DeficitPct:    deficitPct,
		})
	}

	// 3. Ordenar: mayor déficit relativo primero, luego mayor costo estimado.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.DeficitPct.Equal(b.DeficitPct) {
			return a.DeficitPct.GreaterThan(b.DeficitPct)
		}
		return a.EstimatedCost.GreaterThan(b.EstimatedCost)
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
