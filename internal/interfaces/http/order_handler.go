package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// HeaderIdempotencyKey header con la clave de idempotencia del cliente; tiene prioridad sobre el body.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	uc  *ordering.CreateOrderUseCase
	log *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.CreateOrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Crea el pedido (cliente, dirección, ítems, cupón y notificaciones) en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "Clave de idempotencia"
// @Param        body             body    dto.CreateOrderRequest  true   "Pedido"
// @Success      200  {object}  dto.CreateOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOrderRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	if key := c.Get(HeaderIdempotencyKey); key != "" {
		in.IdempotencyKey = key
	}

	resp, err := h.uc.CreateOrder(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("tenant_id", companyID).
		Str("actor_id", userID).
		Str("order_id", resp.OrderID).
		Str("number", resp.Number).
		Msg("pedido creado")
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	resp, err := h.uc.GetOrder(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(resp)
}
