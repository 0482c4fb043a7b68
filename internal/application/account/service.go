// Package account implementa el ciclo de vida de cuentas de empleado:
// registro, cambio de contraseña, roles, bloqueo y seguimiento de intentos
// de login, con emisión de eventos de auditoría.
package account

import (
	"context"
	"fmt"

	"github.com/jhoicas/account-service/internal/application/audit"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/password"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

// lockThreshold intentos fallidos consecutivos que fuerzan el bloqueo.
const lockThreshold = 5

// Operaciones aceptadas por UpdateRole y SetLockStatus.
const (
	OpGrant  = "GRANT"
	OpRemove = "REMOVE"
	OpLock   = "LOCK"
	OpUnlock = "UNLOCK"
)

// RegistrationInput datos de entrada para registrar un empleado.
// El password llega en texto plano ya validado en longitud por la capa externa.
type RegistrationInput struct {
	Name     string
	Lastname string
	Email    string
	Password string
}

// RoleUpdate petición de cambio de rol: GRANT o REMOVE.
type RoleUpdate struct {
	User      string
	Role      string
	Operation string
}

// LockUpdate petición de bloqueo manual: LOCK o UNLOCK.
type LockUpdate struct {
	User      string
	Operation string
}

// Service máquina de estados de cuentas. Toda mutación de un Employee corre
// dentro del TxRunner; los eventos de auditoría se emiten después del commit
// y sus fallos nunca revierten la operación principal.
type Service struct {
	txr       TxRunner
	employees repository.EmployeeRepository
	policy    *password.Policy
	audit     *audit.Service
}

// NewService construye el servicio de cuentas.
func NewService(txr TxRunner, employees repository.EmployeeRepository, policy *password.Policy, auditSvc *audit.Service) *Service {
	return &Service{txr: txr, employees: employees, policy: policy, audit: auditSvc}
}

// Register crea una cuenta nueva. La primera cuenta del sistema recibe
// ADMINISTRATOR; todas las demás, USER. El password se hashea antes de
// persistir y nunca se almacena ni se loguea en plano.
func (s *Service) Register(ctx context.Context, in RegistrationInput, path string) (*entity.Employee, error) {
	var saved *entity.Employee
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		exists, err := employees.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUserExists
		}
		if s.policy.Breached(in.Password) {
			return domain.ErrBreachedPassword
		}
		hash, err := s.policy.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		total, err := employees.Count(ctx)
		if err != nil {
			return err
		}
		roles := []string{entity.RoleUser}
		if total == 0 {
			roles = []string{entity.RoleAdministrator}
		}
		employee := &entity.Employee{
			Name:         in.Name,
			Lastname:     in.Lastname,
			Email:        in.Email,
			PasswordHash: hash,
			Roles:        roles,
			Login:        entity.NewLoginState(),
		}
		saved, err = employees.Save(ctx, employee)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, entity.ActionCreateUser, entity.AnonymousSubject, saved.Email, path)
	return saved, nil
}

// ChangePassword reemplaza el hash del empleado. Rechaza el password si es
// igual al actual o si está en la lista de comprometidos.
func (s *Service) ChangePassword(ctx context.Context, email, newPassword, path string) (*entity.Employee, error) {
	var updated *entity.Employee
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		if s.policy.Verify(newPassword, employee.PasswordHash) {
			return domain.ErrPasswordNotChanged
		}
		if s.policy.Breached(newPassword) {
			return domain.ErrBreachedPassword
		}
		hash, err := s.policy.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		employee.PasswordHash = hash
		updated, err = employees.Save(ctx, employee)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, entity.ActionChangePassword, updated.Email, updated.Email, path)
	return updated, nil
}

// UpdateRole concede o retira un rol respetando las reglas de negocio:
// ADMINISTRATOR no se combina con roles de negocio, no se retira por esta
// vía, y ningún empleado queda sin roles. Las validaciones cortocircuitan
// en el orden: rol válido, cuenta, protección de admin, último rol, rol poseído.
func (s *Service) UpdateRole(ctx context.Context, in RoleUpdate, actor, path string) (*entity.Employee, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrRoleNotFound
	}

	var updated *entity.Employee
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, in.User)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		switch in.Operation {
		case OpGrant:
			if employee.IsAdministrator() {
				return domain.ErrAdminRoleConflict
			}
			if employee.HasRole(in.Role) {
				return domain.ErrRoleAlreadyGranted
			}
			employee.GrantRole(in.Role)
		case OpRemove:
			if in.Role == entity.RoleAdministrator {
				return domain.ErrAdminRoleProtected
			}
			if len(employee.Roles) == 1 {
				return domain.ErrLastRole
			}
			if !employee.HasRole(in.Role) {
				return domain.ErrRoleNotHeld
			}
			employee.RemoveRole(in.Role)
		default:
			return domain.ErrInvalidOperation
		}
		updated, err = employees.Save(ctx, employee)
		return err
	})
	if err != nil {
		return nil, err
	}
	action := entity.ActionGrantRole
	if in.Operation == OpRemove {
		action = entity.ActionRemoveRole
	}
	s.audit.Log(ctx, action, actor, in.User, path)
	return updated, nil
}

// RemoveAccount elimina la cuenta. Los administradores no pueden borrarse.
func (s *Service) RemoveAccount(ctx context.Context, email, actor, path string) error {
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		if employee.IsAdministrator() {
			return domain.ErrAdminDeletion
		}
		return employees.Delete(ctx, employee)
	})
	if err != nil {
		return err
	}
	s.audit.Log(ctx, entity.ActionDeleteUser, actor, email, path)
	return nil
}

// SetLockStatus bloquea o desbloquea manualmente una cuenta. El bloqueo
// manual de un ADMINISTRATOR está prohibido; el desbloqueo siempre procede.
// Devuelve la confirmación legible del nuevo estado.
func (s *Service) SetLockStatus(ctx context.Context, in LockUpdate, actor, path string) (string, error) {
	lock := in.Operation == OpLock
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, in.User)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		if lock {
			if employee.IsAdministrator() {
				return domain.ErrAdminLock
			}
			employee.Login.Locked = true
		} else {
			employee.Login.Locked = false
		}
		_, err = employees.Save(ctx, employee)
		return err
	})
	if err != nil {
		return "", err
	}
	if lock {
		s.audit.Log(ctx, entity.ActionLockUser, actor, in.User, path)
		return fmt.Sprintf("User %s locked!", in.User), nil
	}
	s.audit.Log(ctx, entity.ActionUnlockUser, actor, in.User, path)
	return fmt.Sprintf("User %s unlocked!", in.User), nil
}

// RecordLoginFailure incrementa el contador de intentos fallidos. Al llegar
// al umbral (5) la cuenta se bloquea incondicionalmente: es una acción
// defensiva automática, no administrativa, y aplica también a administradores.
func (s *Service) RecordLoginFailure(ctx context.Context, email, path string) error {
	var attempts int
	err := s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		employee.Login.LoginAttempts++
		attempts = employee.Login.LoginAttempts
		if attempts >= lockThreshold {
			employee.Login.Locked = true
		}
		_, err = employees.Save(ctx, employee)
		return err
	})
	if err != nil {
		return err
	}
	switch {
	case attempts >= lockThreshold:
		s.audit.Log(ctx, entity.ActionLockUser, email, email, path)
	case attempts == 1:
		s.audit.Log(ctx, entity.ActionLoginFailed, email, email, path)
	default:
		s.audit.Log(ctx, entity.ActionBruteForce, email, email, path)
	}
	return nil
}

// RecordLoginSuccess resetea el contador de intentos fallidos. Si ya está
// en cero no escribe nada (idempotente, evita writes redundantes).
func (s *Service) RecordLoginSuccess(ctx context.Context, email string) error {
	return s.txr.Run(ctx, func(employees repository.EmployeeRepository) error {
		employee, err := employees.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrUserNotFound
		}
		if employee.Login.LoginAttempts == 0 {
			return nil
		}
		employee.Login.LoginAttempts = 0
		_, err = employees.Save(ctx, employee)
		return err
	})
}

// FindByEmail busca una cuenta por email (case-insensitive). Devuelve
// (nil, nil) si no existe.
func (s *Service) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return s.employees.FindByEmail(ctx, email)
}

// ListEmployees devuelve todas las cuentas ordenadas por ID.
func (s *Service) ListEmployees(ctx context.Context) ([]*entity.Employee, error) {
	return s.employees.List(ctx)
}
