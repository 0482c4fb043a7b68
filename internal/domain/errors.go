package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes son los que
// expone la capa HTTP tal cual en el cuerpo de error.
var (
	ErrUserExists         = errors.New("User exist!")
	ErrUserNotFound       = errors.New("User not found!")
	ErrRoleNotFound       = errors.New("Role not found!")
	ErrBreachedPassword   = errors.New("The password is in the hacker's database!")
	ErrPasswordNotChanged = errors.New("The passwords must be different!")
	ErrAdminRoleConflict  = errors.New("The user cannot combine administrative and business roles!")
	ErrRoleAlreadyGranted = errors.New("The user already has the role!")
	ErrAdminRoleProtected = errors.New("Can't remove ADMINISTRATOR role!")
	ErrLastRole           = errors.New("The user must have at least one role!")
	ErrRoleNotHeld        = errors.New("The user does not have a role!")
	ErrAdminDeletion      = errors.New("Can't remove ADMINISTRATOR role!")
	ErrAdminLock          = errors.New("Can't lock the ADMINISTRATOR!")

	ErrUnauthorized = errors.New("User account or password is wrong")
	ErrUserLocked   = errors.New("User account is locked")

	ErrPayrollNotFound  = errors.New("Payroll record not found!")
	ErrDuplicatePeriod  = errors.New("Duplicated period")
	ErrInvalidEmployee  = errors.New("Invalid employee email")
	ErrNegativeSalary   = errors.New("Salary cannot be negative")
	ErrInvalidOperation = errors.New("Invalid operation")
)
