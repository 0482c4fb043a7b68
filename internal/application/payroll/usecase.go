// Package payroll gestiona las nóminas por empleado y período.
package payroll

import (
	"context"
	"fmt"

	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

// Input una nómina a cargar o actualizar.
type Input struct {
	EmployeeEmail string
	Period        string
	Salary        int64
}

// UseCase casos de uso de nómina: carga por lote, actualización y consulta.
type UseCase struct {
	payrolls  repository.PayrollRepository
	employees repository.EmployeeRepository
}

// NewUseCase construye el caso de uso de nómina.
func NewUseCase(payrolls repository.PayrollRepository, employees repository.EmployeeRepository) *UseCase {
	return &UseCase{payrolls: payrolls, employees: employees}
}

// Upload inserta el lote completo o nada. Rechaza pares (empleado, período)
// repetidos dentro del lote o ya existentes, emails sin cuenta y salarios
// negativos.
func (uc *UseCase) Upload(ctx context.Context, inputs []Input) error {
	seen := make(map[string]struct{}, len(inputs))
	pending := make([]*entity.Payroll, 0, len(inputs))
	for _, in := range inputs {
		if in.Salary < 0 {
			return domain.ErrNegativeSalary
		}
		key := in.EmployeeEmail + "|" + in.Period
		if _, dup := seen[key]; dup {
			return domain.ErrDuplicatePeriod
		}
		seen[key] = struct{}{}

		exists, err := uc.employees.ExistsByEmail(ctx, in.EmployeeEmail)
		if err != nil {
			return fmt.Errorf("validar empleado: %w", err)
		}
		if !exists {
			return domain.ErrInvalidEmployee
		}
		existing, err := uc.payrolls.FindByEmployeeAndPeriod(ctx, in.EmployeeEmail, in.Period)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicatePeriod
		}
		pending = append(pending, &entity.Payroll{
			EmployeeEmail: in.EmployeeEmail,
			Period:        in.Period,
			Salary:        in.Salary,
		})
	}
	return uc.payrolls.SaveAll(ctx, pending)
}

// Update cambia el salario de una nómina existente.
func (uc *UseCase) Update(ctx context.Context, in Input) error {
	if in.Salary < 0 {
		return domain.ErrNegativeSalary
	}
	existing, err := uc.payrolls.FindByEmployeeAndPeriod(ctx, in.EmployeeEmail, in.Period)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrPayrollNotFound
	}
	existing.Salary = in.Salary
	return uc.payrolls.Update(ctx, existing)
}

// ForEmployee devuelve todas las nóminas del empleado.
func (uc *UseCase) ForEmployee(ctx context.Context, email string) ([]*entity.Payroll, error) {
	return uc.payrolls.FindByEmployee(ctx, email)
}

// ForEmployeePeriod devuelve la nómina del empleado en el período dado.
func (uc *UseCase) ForEmployeePeriod(ctx context.Context, email, period string) (*entity.Payroll, error) {
	p, err := uc.payrolls.FindByEmployeeAndPeriod(ctx, email, period)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPayrollNotFound
	}
	return p, nil
}
