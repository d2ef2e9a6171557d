package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Las entradas por compra van por recepción; aquí OUT, DISCARD, PRODUCTION y ADJUST.
type RegisterMovementRequest struct {
	SupplyID string           `json:"supplyId" validate:"required"`
	Type     string           `json:"type" validate:"required,oneof=OUT DISCARD PRODUCTION ADJUST"`
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unitCost,omitempty"`
	Note     string           `json:"note,omitempty" validate:"max=300"`
}

// MovementResponse resultado de un movimiento manual.
type MovementResponse struct {
	MovementID   string          `json:"movementId"`
	SupplyID     string          `json:"supplyId"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un insumo bajo el stock mínimo.
type ReplenishmentSuggestionDTO struct {
	SupplyID      string          `json:"supplyId"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit,omitempty"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStock      decimal.Decimal `json:"minStock"`
	IdealStock    decimal.Decimal `json:"idealStock"`    // MinStock * 1.5
	SuggestedQty  decimal.Decimal `json:"suggestedQty"`  // IdealStock - CurrentStock
	UnitCost      decimal.Decimal `json:"unitCost"`      // costo promedio ponderado
	EstimatedCost decimal.Decimal `json:"estimatedCost"` // SuggestedQty * UnitCost
	DeficitPct    decimal.Decimal `json:"deficitPct"`    // % bajo el mínimo
	Priority      int             `json:"priority"`      // 1 = más urgente
}

// DeleteProductResponse cantidades borradas por el orquestador.
type DeleteProductResponse struct {
	ProductID     string `json:"productId"`
	CategoryLinks int64  `json:"categoryLinks"`
	Complements   int64  `json:"complements"`
	RecipeLines   int64  `json:"recipeLines"`
}
