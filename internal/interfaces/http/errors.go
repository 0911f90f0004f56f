package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epi-estoque/internal/application/dto"
	"github.com/jhoicas/epi-estoque/internal/domain"
	"github.com/jhoicas/epi-estoque/pkg/validator"
)

// respondError traduce errores de dominio a estado HTTP y ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validator.Errors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verrs.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "servicio no disponible, intente más tarde"})
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: ferr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler es el fiber.Config.ErrorHandler de la API.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

// companyOrAbort devuelve el company_id del token o responde 401.
func companyOrAbort(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token"})
		return "", false
	}
	return companyID, true
}

// parsePeriodQuery lee y valida los parámetros de período.
func parsePeriodQuery(c *fiber.Ctx) (dto.PeriodQuery, error) {
	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	if err := validator.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
