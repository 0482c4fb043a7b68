package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/auth"
	"github.com/jhoicas/account-service/internal/application/dto"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
)

// minPasswordLen longitud mínima de contraseña exigida en el borde.
const minPasswordLen = 12

// AuthHandler maneja registro, login y cambio de contraseña.
type AuthHandler struct {
	accounts *account.Service
	gateway  *auth.Gateway
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(accounts *account.Service, gateway *auth.Gateway) *AuthHandler {
	return &AuthHandler{accounts: accounts, gateway: gateway}
}

// Signup registra una cuenta nueva. La primera cuenta del sistema queda
// como ADMINISTRATOR.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Lastname == "" || in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "name, lastname, email y password son requeridos")
	}
	if !entity.ValidEmail(in.Email) {
		return badRequest(c, "VALIDATION", "el email debe pertenecer al dominio acme.com")
	}
	if len(in.Password) < minPasswordLen {
		return badRequest(c, "VALIDATION", "Password length must be 12 chars minimum!")
	}
	employee, err := h.accounts.Register(c.Context(), account.RegistrationInput{
		Name:     in.Name,
		Lastname: in.Lastname,
		Email:    in.Email,
		Password: in.Password,
	}, c.Path())
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(employee))
}

// Login autentica y devuelve un JWT con los roles de la cuenta.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.gateway.Login(c.Context(), in.Email, in.Password, c.Path())
	if err != nil {
		if errors.Is(err, domain.ErrUserLocked) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOCKED", Message: domain.ErrUserLocked.Error(), Path: c.Path()})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas", Path: c.Path()})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token: out.Token,
		User:  toEmployeeResponse(out.Employee),
	})
}

// ChangePassword reemplaza la contraseña del principal autenticado.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.NewPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.NewPassword) < minPasswordLen {
		return badRequest(c, "VALIDATION", "Password length must be 12 chars minimum!")
	}
	updated, err := h.accounts.ChangePassword(c.Context(), GetEmail(c), in.NewPassword, c.Path())
	if err != nil {
		return mapAccountError(c, err)
	}
	return c.JSON(dto.PasswordChangedResponse{
		Email:  updated.Email,
		Status: "The password has been updated successfully",
	})
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Lastname: e.Lastname,
		Email:    e.Email,
		Roles:    e.Roles,
	}
}
