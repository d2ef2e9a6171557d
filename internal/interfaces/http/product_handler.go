package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/catalog"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// ProductHandler maneja las operaciones de catálogo (protegido).
type ProductHandler struct {
	deleteUC *catalog.DeleteProductUseCase
	log      *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(deleteUC *catalog.DeleteProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{deleteUC: deleteUC, log: log}
}

// Delete godoc
// @Summary      Borrar producto
// @Description  Borra vínculos de categoría, complementos, receta y el producto, en ese orden y en una transacción.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	resp, err := h.deleteUC.DeleteProduct(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("tenant_id", companyID).Str("actor_id", GetUserID(c)).Str("product_id", resp.ProductID).Msg("producto borrado")
	return c.JSON(resp)
}
