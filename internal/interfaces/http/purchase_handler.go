package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/application/purchasing"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// PurchaseHandler maneja la recepción de compras (protegido).
type PurchaseHandler struct {
	uc  *purchasing.ReceivePurchaseUseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.ReceivePurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Receive godoc
// @Summary      Recibir mercancía de una compra
// @Description  Suma stock y recalcula el costo promedio ponderado por línea; avanza el estado de la compra.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id               path    string                      true   "ID de la compra"
// @Param        Idempotency-Key  header  string                      false  "Clave de idempotencia"
// @Param        body             body    dto.ReceivePurchaseRequest  true   "Líneas recibidas"
// @Success      200  {object}  dto.PurchaseSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receipts [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.ReceivePurchaseRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	if key := c.Get(HeaderIdempotencyKey); key != "" {
		in.IdempotencyKey = key
	}

	purchaseID := c.Params("id")
	resp, err := h.uc.ReceivePurchase(c.UserContext(), companyID, userID, purchaseID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("tenant_id", companyID).
		Str("actor_id", userID).
		Str("purchase_id", purchaseID).
		Str("status", resp.Status).
		Msg("recepción confirmada")
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	resp, err := h.uc.GetPurchase(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}
