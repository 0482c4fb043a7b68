package repository

import (
	"context"

	"github.com/jhoicas/account-service/internal/domain/entity"
)

// PayrollRepository puerto de persistencia para nóminas.
type PayrollRepository interface {
	// FindByEmployee nóminas del empleado ordenadas por período descendente.
	FindByEmployee(ctx context.Context, email string) ([]*entity.Payroll, error)
	// FindByEmployeeAndPeriod devuelve (nil, nil) si no existe.
	FindByEmployeeAndPeriod(ctx context.Context, email, period string) (*entity.Payroll, error)
	// SaveAll inserta el lote completo o nada.
	SaveAll(ctx context.Context, payrolls []*entity.Payroll) error
	Update(ctx context.Context, payroll *entity.Payroll) error
}
