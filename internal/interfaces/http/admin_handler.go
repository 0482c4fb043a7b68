package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/dto"
	"github.com/jhoicas/account-service/internal/domain/entity"
)

// AdminHandler operaciones administrativas sobre cuentas: listado, roles,
// borrado y bloqueo manual.
type AdminHandler struct {
	accounts *account.Service
}

// NewAdminHandler construye el handler administrativo.
func NewAdminHandler(accounts *account.Service) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// List devuelve todas las cuentas ordenadas por ID.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	employees, err := h.accounts.ListEmployees(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return c.JSON(out)
}

// UpdateRole concede o retira un rol (GRANT/REMOVE).
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.RoleUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Operation != account.OpGrant && in.Operation != account.OpRemove {
		return badRequest(c, "VALIDATION", "operation debe ser GRANT o REMOVE")
	}
	updated, err := h.accounts.UpdateRole(c.Context(), account.RoleUpdate{
		User:      in.User,
		Role:      in.Role,
		Operation: in.Operation,
	}, GetEmail(c), c.Path())
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(toEmployeeResponse(updated))
}

// Delete elimina una cuenta. Los administradores no pueden borrarse.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	email := c.Params("email")
	if !entity.ValidEmail(email) {
		return badRequest(c, "VALIDATION", "el email debe pertenecer al dominio acme.com")
	}
	if err := h.accounts.RemoveAccount(c.Context(), email, GetEmail(c), c.Path()); err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(dto.DeleteResponse{User: email, Status: "Deleted successfully!"})
}

// UpdateLock bloquea o desbloquea manualmente una cuenta.
func (h *AdminHandler) UpdateLock(c *fiber.Ctx) error {
	var in dto.LockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Operation != account.OpLock && in.Operation != account.OpUnlock {
		return badRequest(c, "VALIDATION", "operation debe ser LOCK o UNLOCK")
	}
	status, err := h.accounts.SetLockStatus(c.Context(), account.LockUpdate{
		User:      in.User,
		Operation: in.Operation,
	}, GetEmail(c), c.Path())
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(dto.LockResponse{Status: status})
}
