package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código de la API.
func errorStatus(err error) (int, string) {
	var (
		stockErr  *domain.InsufficientStockError
		creditErr *domain.InsufficientCreditError
	)
	switch {
	case errors.As(err, &stockErr):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.As(err, &creditErr):
		return fiber.StatusConflict, "INSUFFICIENT_CREDIT"
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, domain.ErrMissingClient):
		return fiber.StatusBadRequest, "MISSING_CLIENT"
	case errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrOverpayment):
		return fiber.StatusConflict, "OVERPAYMENT"
	case errors.Is(err, domain.ErrCreditClosed):
		return fiber.StatusConflict, "CREDIT_CLOSED"
	case errors.Is(err, domain.ErrCategoryInUse):
		return fiber.StatusConflict, "CATEGORY_IN_USE"
	case errors.Is(err, domain.ErrClientHasOpenCredits):
		return fiber.StatusConflict, "CLIENT_HAS_CREDITS"
	case errors.Is(err, domain.ErrUsernameAlreadyExists):
		return fiber.StatusConflict, "USERNAME_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrIntegrity):
		return fiber.StatusInternalServerError, "INTEGRITY"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con {code, message}. El mensaje de los errores tipados
// lleva el detalle (producto, crédito disponible).
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
