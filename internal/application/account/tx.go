package account

import (
	"context"

	"github.com/jhoicas/account-service/internal/domain/repository"
)

// TxRunner ejecuta fn como unidad atómica contra el store de empleados.
// La implementación debe serializar read-check-write por fila de empleado:
// a lo sumo una mutación concurrente exitosa por cuenta. La implementación
// PostgreSQL bloquea la fila con SELECT ... FOR UPDATE dentro de la
// transacción; la de tests serializa con un mutex.
type TxRunner interface {
	Run(ctx context.Context, fn func(employees repository.EmployeeRepository) error) error
}
