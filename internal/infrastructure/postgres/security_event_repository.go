package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
)

var _ repository.SecurityEventRepository = (*SecurityEventRepo)(nil)

// SecurityEventRepo sink append-only de eventos de seguridad sobre PostgreSQL.
type SecurityEventRepo struct {
	db DBTX
}

// NewSecurityEventRepository construye el adaptador de persistencia de eventos.
func NewSecurityEventRepository(db DBTX) *SecurityEventRepo {
	return &SecurityEventRepo{db: db}
}

// Append persiste el evento y asigna su ID. No requiere coordinación con las
// mutaciones de empleados: solo inserta, nunca actualiza.
func (r *SecurityEventRepo) Append(ctx context.Context, event *entity.SecurityEvent) error {
	query := `
		INSERT INTO security_events (date, action, subject, object, path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		event.Date, event.Action, event.Subject, event.Object, event.Path,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

// List devuelve los eventos en orden de inserción.
func (r *SecurityEventRepo) List(ctx context.Context) ([]*entity.SecurityEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date, action, subject, object, path FROM security_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list security events: %w", err)
	}
	defer rows.Close()
	var list []*entity.SecurityEvent
	for rows.Next() {
		var e entity.SecurityEvent
		if err := rows.Scan(&e.ID, &e.Date, &e.Action, &e.Subject, &e.Object, &e.Path); err != nil {
			return nil, fmt.Errorf("scan security event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
