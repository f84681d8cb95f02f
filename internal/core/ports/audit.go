package ports

import (
	"context"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

// AuditSink accepts audit events from the request path. Record must never
// block and never fail the calling operation.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuditService persists a single audit event off the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// AuditRepository defines the persistence interface for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
