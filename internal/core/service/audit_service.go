package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopstack/ecommerce-api/internal/api/metrics"
	"github.com/shopstack/ecommerce-api/internal/core/domain"
	"github.com/shopstack/ecommerce-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events and keeps the
// auth counters current.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit event. Metrics are bumped even when the
// insert fails; the trail is best-effort but the counters must not drift
// from what actually happened.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	metrics.AuthEventsTotal.WithLabelValues(event.Kind).Inc()

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("kind", event.Kind).
		Str("email", event.Email).
		Msg("auth event recorded")
	return nil
}
