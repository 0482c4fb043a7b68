package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/audit"
)

// SecurityHandler expone el log de eventos de seguridad para auditores.
type SecurityHandler struct {
	audit *audit.Service
}

// NewSecurityHandler construye el handler de eventos de seguridad.
func NewSecurityHandler(auditSvc *audit.Service) *SecurityHandler {
	return &SecurityHandler{audit: auditSvc}
}

// Events devuelve todos los eventos en orden de inserción.
func (h *SecurityHandler) Events(c *fiber.Ctx) error {
	events, err := h.audit.Events(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(events)
}
