package ports

import (
	"context"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// ProposalAuditRepository persists proposal lifecycle events.
type ProposalAuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.ProposalEvent) error
}

// ProposalAuditor accepts audit events without blocking the caller.
type ProposalAuditor interface {
	Record(event domain.ProposalEvent)
}
