package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, name, lastname, email, password_hash, roles, locked, enabled, login_attempts`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
// Las búsquedas por email comparan con LOWER; el email se guarda con el case
// original del registro.
type EmployeeRepo struct {
	db DBTX
	// forUpdate hace que FindByEmail bloquee la fila (repos atados a una tx).
	forUpdate bool
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(db DBTX) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// newEmployeeRepositoryTx variante atada a una transacción: las lecturas
// toman el row lock para serializar read-check-write por empleado.
func newEmployeeRepositoryTx(db DBTX) *EmployeeRepo {
	return &EmployeeRepo{db: db, forUpdate: true}
}

// FindByEmail busca por email case-insensitive. Devuelve (nil, nil) si no existe.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees WHERE LOWER(email) = LOWER($1)`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	var e entity.Employee
	err := r.db.QueryRow(ctx, query, email).Scan(
		&e.ID, &e.Name, &e.Lastname, &e.Email, &e.PasswordHash, &e.Roles,
		&e.Login.Locked, &e.Login.Enabled, &e.Login.LoginAttempts,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return &e, nil
}

// ExistsByEmail indica si existe una cuenta con ese email (case-insensitive).
func (r *EmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists employee by email: %w", err)
	}
	return exists, nil
}

// Save inserta (asignando ID) o actualiza según el ID de la entidad.
func (r *EmployeeRepo) Save(ctx context.Context, employee *entity.Employee) (*entity.Employee, error) {
	if employee.ID == 0 {
		query := `
			INSERT INTO employees (name, lastname, email, password_hash, roles, locked, enabled, login_attempts)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
		err := r.db.QueryRow(ctx, query,
			employee.Name, employee.Lastname, employee.Email, employee.PasswordHash,
			employee.Roles, employee.Login.Locked, employee.Login.Enabled, employee.Login.LoginAttempts,
		).Scan(&employee.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrUserExists
			}
			return nil, fmt.Errorf("insert employee: %w", err)
		}
		return employee, nil
	}
	query := `
		UPDATE employees
		SET name = $2, lastname = $3, email = $4, password_hash = $5, roles = $6,
		    locked = $7, enabled = $8, login_attempts = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		employee.ID, employee.Name, employee.Lastname, employee.Email, employee.PasswordHash,
		employee.Roles, employee.Login.Locked, employee.Login.Enabled, employee.Login.LoginAttempts,
	)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return employee, nil
}

// Delete elimina la cuenta.
func (r *EmployeeRepo) Delete(ctx context.Context, employee *entity.Employee) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, employee.ID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// Count devuelve el total de cuentas.
func (r *EmployeeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// List devuelve todas las cuentas ordenadas por ID.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Lastname, &e.Email, &e.PasswordHash, &e.Roles,
			&e.Login.Locked, &e.Login.Enabled, &e.Login.LoginAttempts,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
