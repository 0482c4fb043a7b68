package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/dto"
	"github.com/jhoicas/account-service/internal/domain"
)

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message, Path: c.Path()})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error(), Path: c.Path()})
}

// mapAccountError traduce los errores de negocio del servicio de cuentas a
// estados HTTP. Todas las violaciones de reglas son 400 salvo la cuenta
// inexistente, que es 404.
func mapAccountError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error(), Path: c.Path()})
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrBreachedPassword),
		errors.Is(err, domain.ErrPasswordNotChanged),
		errors.Is(err, domain.ErrAdminRoleConflict),
		errors.Is(err, domain.ErrRoleAlreadyGranted),
		errors.Is(err, domain.ErrAdminRoleProtected),
		errors.Is(err, domain.ErrLastRole),
		errors.Is(err, domain.ErrRoleNotHeld),
		errors.Is(err, domain.ErrAdminDeletion),
		errors.Is(err, domain.ErrAdminLock),
		errors.Is(err, domain.ErrInvalidOperation):
		return badRequest(c, "BUSINESS_RULE", err.Error())
	default:
		return internalError(c, err)
	}
}

// mapPayrollError traduce los errores de nómina a estados HTTP.
func mapPayrollError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPayrollNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error(), Path: c.Path()})
	case errors.Is(err, domain.ErrDuplicatePeriod),
		errors.Is(err, domain.ErrInvalidEmployee),
		errors.Is(err, domain.ErrNegativeSalary):
		return badRequest(c, "VALIDATION", err.Error())
	default:
		return internalError(c, err)
	}
}
