package repository

import (
	"context"

	"github.com/jhoicas/account-service/internal/domain/entity"
)

// SecurityEventRepository puerto append-only para eventos de auditoría.
// No hay update ni delete: los eventos sobreviven a las cuentas que referencian.
type SecurityEventRepository interface {
	// Append persiste el evento y asigna su ID.
	Append(ctx context.Context, event *entity.SecurityEvent) error
	// List devuelve los eventos en orden de inserción.
	List(ctx context.Context) ([]*entity.SecurityEvent, error)
}
