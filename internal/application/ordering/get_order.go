package ordering

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// GetOrder devuelve el pedido con ítems, historial y cupón aplicado. Un pedido de otra empresa
// se reporta como no encontrado.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrOrderNotFound
	}
	items, err := uc.orderRepo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	history, err := uc.orderRepo.ListStatusHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	redemption, err := uc.couponRepo.GetRedemptionByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items, history, redemption), nil
}

func toOrderResponse(
	o *entity.Order,
	items []*entity.OrderItem,
	history []*entity.OrderStatusHistory,
	redemption *entity.CouponRedemption,
) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                o.ID,
		Number:            o.Number,
		Type:              o.Type,
		Status:            o.Status,
		CustomerID:        o.CustomerID,
		DeliveryAddressID: o.DeliveryAddressID,
		PaymentMethodCode: o.PaymentMethodCode,
		ChangeAmount:      o.ChangeAmount,
		ItemsValue:        o.ItemsValue,
		DeliveryFee:       o.DeliveryFee,
		DiscountValue:     o.DiscountValue,
		TotalValue:        o.TotalValue,
		Notes:             o.Notes,
		PlacedAt:          o.PlacedAt,
		Items:             make([]dto.OrderItemResponse, 0, len(items)),
		History:           make([]dto.OrderStatusResponse, 0, len(history)),
	}
	if redemption != nil {
		resp.CouponID = redemption.CouponID
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Options:   it.Options,
		})
	}
	for _, h := range history {
		resp.History = append(resp.History, dto.OrderStatusResponse{
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			ChangedAt:  h.ChangedAt,
		})
	}
	return resp
}
