// Package auth traduce las verificaciones de credenciales entrantes en
// llamadas al servicio de cuentas y al log de auditoría.
package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/audit"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/password"
	"github.com/jhoicas/account-service/pkg/jwt"
)

// JWTConfig configuración para la emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Result resultado de un login exitoso.
type Result struct {
	Token    string
	Employee *entity.Employee
}

// Gateway verifica credenciales contra el store y delega el seguimiento de
// intentos al servicio de cuentas: cada fallo de credenciales llama a
// RecordLoginFailure y cada éxito a RecordLoginSuccess.
type Gateway struct {
	accounts *account.Service
	policy   *password.Policy
	audit    *audit.Service
	jwtCfg   JWTConfig
}

// NewGateway construye el gateway de autenticación.
func NewGateway(accounts *account.Service, policy *password.Policy, auditSvc *audit.Service, jwtCfg JWTConfig) *Gateway {
	return &Gateway{accounts: accounts, policy: policy, audit: auditSvc, jwtCfg: jwtCfg}
}

// Login autentica email/password y emite un JWT con los roles de la cuenta.
// Cuentas bloqueadas o deshabilitadas devuelven ErrUserLocked; cualquier
// fallo de credenciales devuelve ErrUnauthorized sin distinguir la causa.
func (g *Gateway) Login(ctx context.Context, email, plaintext, path string) (*Result, error) {
	employee, err := g.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUnauthorized
	}
	if employee.Login.Locked || !employee.Login.Enabled {
		return nil, domain.ErrUserLocked
	}
	if !g.policy.Verify(plaintext, employee.PasswordHash) {
		if err := g.accounts.RecordLoginFailure(ctx, email, path); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	if err := g.accounts.RecordLoginSuccess(ctx, email); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(g.jwtCfg.Secret, employee.Email, employee.Roles, g.jwtCfg.Issuer, g.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, Employee: employee}, nil
}

// DenyAccess registra un fallo de autorización sobre un principal ya
// autenticado: evento ACCESS_DENIED con subject = object = principal.
func (g *Gateway) DenyAccess(ctx context.Context, subject, path string) {
	g.audit.Log(ctx, entity.ActionAccessDenied, subject, subject, path)
}
