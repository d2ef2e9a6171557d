package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maxsonaraujo/pdc-api/internal/application/dto"
	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

// statusFor traduce la familia del error de dominio a código HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindBusinessRule:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde el error con código estable. Los errores de persistencia se registran
// con contexto y se exponen de forma genérica.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if status == fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("tenant_id", GetCompanyID(c)).
			Str("actor_id", GetUserID(c)).
			Str("route", c.Method()+" "+c.Path()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Kind: string(domain.KindPersistence), Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    domain.CodeOf(err),
		Kind:    string(kind),
		Message: err.Error(),
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Kind: string(domain.KindValidation), Message: "cuerpo inválido"})
}
