package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/audit"
	"github.com/jhoicas/account-service/internal/application/auth"
	"github.com/jhoicas/account-service/internal/application/payroll"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountSvc *account.Service
	AuditSvc   *audit.Service
	Gateway    *auth.Gateway
	PayrollUC  *payroll.UseCase
	Employees  repository.EmployeeRepository
	JWTSecret  string
}

// Router registra las rutas de la API con su RBAC:
//   - /api/auth: signup y login públicos, changepass autenticado
//   - /api/empl: USER y ACCOUNTANT
//   - /api/acct: ACCOUNTANT
//   - /api/admin: ADMINISTRATOR
//   - /api/security: AUDITOR
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AccountSvc, deps.Gateway)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/changepass", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	payrollHandler := NewPayrollHandler(deps.PayrollUC, deps.Employees)
	protected.Get("/empl/payment",
		RequireRole(deps.Gateway, entity.RoleUser, entity.RoleAccountant),
		payrollHandler.GetPayments)
	protected.Post("/acct/payments",
		RequireRole(deps.Gateway, entity.RoleAccountant),
		payrollHandler.Upload)
	protected.Put("/acct/payments",
		RequireRole(deps.Gateway, entity.RoleAccountant),
		payrollHandler.Update)

	adminHandler := NewAdminHandler(deps.AccountSvc)
	admin := protected.Group("/admin/user", RequireRole(deps.Gateway, entity.RoleAdministrator))
	admin.Get("/", adminHandler.List)
	admin.Put("/role", adminHandler.UpdateRole)
	admin.Put("/access", adminHandler.UpdateLock)
	admin.Delete("/:email", adminHandler.Delete)

	securityHandler := NewSecurityHandler(deps.AuditSvc)
	protected.Get("/security/events",
		RequireRole(deps.Gateway, entity.RoleAuditor),
		securityHandler.Events)
}
