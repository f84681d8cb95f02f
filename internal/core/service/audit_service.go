package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// trail. Failures are logged and swallowed; losing an audit row must never
// surface to the request that produced it.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		s.log.Warn().Err(err).
			Str("action", string(event.Action)).
			Str("outcome", event.Outcome).
			Msg("failed to persist audit event")
		return err
	}
	return nil
}
