package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/dto"
	"github.com/jhoicas/account-service/pkg/jwt"
)

// Locals keys para email y roles en Fiber.
const (
	LocalEmail = "email"
	LocalRoles = "roles"
)

// accessAuditor contrato mínimo para auditar denegaciones de acceso.
// Lo implementa *auth.Gateway; la interfaz evita el import circular.
type accessAuditor interface {
	DenyAccess(ctx context.Context, subject, path string)
}

// AuthMiddleware valida el Bearer Token JWT y extrae email y roles a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		email, roles, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalEmail, email)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

// RequireRole autoriza si el principal tiene alguno de los roles permitidos.
// Debe usarse DESPUÉS de AuthMiddleware. Cada denegación emite un evento
// ACCESS_DENIED con subject = object = principal.
func RequireRole(auditor accessAuditor, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "roles no encontrados en el token"})
		}
		for _, have := range roles {
			for _, want := range allowed {
				if have == want {
					return c.Next()
				}
			}
		}
		auditor.DenyAccess(c.Context(), GetEmail(c), c.Path())
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "Access Denied!",
			Path:    c.Path(),
		})
	}
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRoles devuelve los roles del contexto (después del middleware de auth).
func GetRoles(c *fiber.Ctx) []string {
	v := c.Locals(LocalRoles)
	if v == nil {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}
