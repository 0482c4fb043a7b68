package repository

import (
	"context"

	"github.com/jhoicas/account-service/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Las búsquedas por email son case-insensitive; el almacenamiento preserva
// el case tecleado en el registro.
type EmployeeRepository interface {
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save asigna ID en el primer guardado y devuelve la entidad persistida.
	Save(ctx context.Context, employee *entity.Employee) (*entity.Employee, error)
	Delete(ctx context.Context, employee *entity.Employee) error
	Count(ctx context.Context) (int64, error)
	// List devuelve todos los empleados ordenados por ID ascendente.
	List(ctx context.Context) ([]*entity.Employee, error)
}
