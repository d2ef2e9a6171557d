package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// RequireActiveTenant verifica que la empresa del token exista y esté activa.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 401 si no hay company_id en el contexto.
//   - 404 TENANT_NOT_FOUND si la empresa no existe o no está activa.
//   - 503 si falla la consulta.
func RequireActiveTenant(companies repository.CompanyRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		company, err := companies.GetByID(c.UserContext(), companyID)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", companyID).Msg("verificar empresa")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TENANT_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if company == nil || !company.IsActive() {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "TENANT_NOT_FOUND",
				Kind:    "NOT_FOUND",
				Message: "empresa no encontrada o inactiva",
			})
		}
		return c.Next()
	}
}
