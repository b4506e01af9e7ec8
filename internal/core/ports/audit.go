package ports

import (
	"context"

	"github.com/shopstack/ecommerce-api/internal/core/domain"
)

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}

// AuditService processes a single audit event end-to-end.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous processing. Enqueue must not
// block the request path; implementations drop on overflow.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// LoginLimiter throttles repeated failed logins per account. Implementations
// fail open: a limiter backend outage must not lock out logins.
type LoginLimiter interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
