// Package audit registra eventos de seguridad en un sink append-only.
package audit

import (
	"context"
	"time"

	"github.com/jhoicas/account-service/internal/domain/entity"
	"github.com/jhoicas/account-service/internal/domain/repository"
	"github.com/jhoicas/account-service/pkg/logger"
)

// Service escribe y lista eventos de seguridad. Un fallo al escribir se
// reporta por el logger pero nunca aborta la operación que lo acompaña:
// la auditoría es observacional, no transaccional.
type Service struct {
	events repository.SecurityEventRepository
	log    *logger.Logger
	now    func() time.Time
}

// NewService construye el servicio de auditoría.
func NewService(events repository.SecurityEventRepository, log *logger.Logger) *Service {
	return &Service{events: events, log: log, now: time.Now}
}

// Log crea y persiste un SecurityEvent con fecha actual.
func (s *Service) Log(ctx context.Context, action, subject, object, path string) {
	event := &entity.SecurityEvent{
		Date:    s.now(),
		Action:  action,
		Subject: subject,
		Object:  object,
		Path:    path,
	}
	if err := s.events.Append(ctx, event); err != nil {
		s.log.Error().Err(err).
			Str("action", action).
			Str("subject", subject).
			Str("object", object).
			Msg("no se pudo persistir el evento de seguridad")
	}
}

// Events devuelve los eventos en orden de inserción.
func (s *Service) Events(ctx context.Context) ([]*entity.SecurityEvent, error) {
	return s.events.List(ctx)
}
