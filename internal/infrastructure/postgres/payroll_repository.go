package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/account-service/internal/domain"
	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo implementación del puerto PayrollRepository sobre PostgreSQL.
// La pareja (employee_email, period) tiene constraint único.
type PayrollRepo struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository construye el adaptador de persistencia de nóminas.
func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepo {
	return &PayrollRepo{pool: pool}
}

// FindByEmployee nóminas del empleado, período más reciente primero.
func (r *PayrollRepo) FindByEmployee(ctx context.Context, email string) ([]*entity.Payroll, error) {
	query := `
		SELECT id, employee_email, period, salary
		FROM payrolls WHERE LOWER(employee_email) = LOWER($1)
		ORDER BY substring(period from 4 for 4) DESC, substring(period from 1 for 2) DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payroll
	for rows.Next() {
		var p entity.Payroll
		if err := rows.Scan(&p.ID, &p.EmployeeEmail, &p.Period, &p.Salary); err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// FindByEmployeeAndPeriod devuelve (nil, nil) si no existe.
func (r *PayrollRepo) FindByEmployeeAndPeriod(ctx context.Context, email, period string) (*entity.Payroll, error) {
	query := `
		SELECT id, employee_email, period, salary
		FROM payrolls WHERE LOWER(employee_email) = LOWER($1) AND period = $2`
	var p entity.Payroll
	err := r.pool.QueryRow(ctx, query, email, period).Scan(&p.ID, &p.EmployeeEmail, &p.Period, &p.Salary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll: %w", err)
	}
	return &p, nil
}

// SaveAll inserta el lote dentro de una transacción: todo o nada.
func (r *PayrollRepo) SaveAll(ctx context.Context, payrolls []*entity.Payroll) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range payrolls {
		err := tx.QueryRow(ctx,
			`INSERT INTO payrolls (employee_email, period, salary) VALUES ($1, $2, $3) RETURNING id`,
			p.EmployeeEmail, p.Period, p.Salary,
		).Scan(&p.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicatePeriod
			}
			return fmt.Errorf("insert payroll: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update actualiza el salario de una nómina existente.
func (r *PayrollRepo) Update(ctx context.Context, payroll *entity.Payroll) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payrolls SET salary = $2 WHERE id = $1`, payroll.ID, payroll.Salary)
	if err != nil {
		return fmt.Errorf("update payroll: %w", err)
	}
	return nil
}
