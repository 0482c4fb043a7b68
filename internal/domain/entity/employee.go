package entity

import "regexp"

// Roles válidos para Employee. ADMINISTRATOR es excluyente con los roles
// de negocio (USER, ACCOUNTANT, AUDITOR).
const (
	RoleAdministrator = "ADMINISTRATOR"
	RoleUser          = "USER"
	RoleAccountant    = "ACCOUNTANT"
	RoleAuditor       = "AUDITOR"
)

// Roles catálogo fijo de roles reconocidos por el sistema.
var Roles = []string{RoleAdministrator, RoleUser, RoleAccountant, RoleAuditor}

// emailPattern solo se aceptan correos corporativos del dominio acme.com.
var emailPattern = regexp.MustCompile(`^.+@acme\.com$`)

// ValidRole indica si role pertenece al catálogo.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidEmail indica si email cumple el patrón corporativo (case-insensitive
// en el dominio solo para la búsqueda; aquí se valida el formato literal).
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// LoginState estado de autenticación embebido en Employee (misma vida útil).
type LoginState struct {
	Locked        bool
	Enabled       bool
	LoginAttempts int
}

// Employee representa una cuenta de empleado con sus roles y estado de login.
// Roles nunca está vacío después del registro.
type Employee struct {
	ID           int64
	Name         string
	Lastname     string
	Email        string // único, lookup case-insensitive, se preserva el case original
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []string
	Login        LoginState
}

// NewLoginState estado inicial: desbloqueado, habilitado, cero intentos.
func NewLoginState() LoginState {
	return LoginState{Locked: false, Enabled: true, LoginAttempts: 0}
}

// HasRole indica si el empleado tiene el rol exacto.
func (e *Employee) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdministrator indica si el empleado tiene el rol ADMINISTRATOR.
func (e *Employee) IsAdministrator() bool {
	return e.HasRole(RoleAdministrator)
}

// GrantRole agrega el rol al final del conjunto (el orden se preserva).
func (e *Employee) GrantRole(role string) {
	e.Roles = append(e.Roles, role)
}

// RemoveRole elimina el rol del conjunto. No valida reglas de negocio;
// eso es responsabilidad del servicio.
func (e *Employee) RemoveRole(role string) {
	out := e.Roles[:0]
	for _, r := range e.Roles {
		if r != role {
			out = append(out, r)
		}
	}
	e.Roles = out
}
