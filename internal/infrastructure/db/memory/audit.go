package memory

import (
	"context"
	"sync"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

type AuditRepository struct {
	mu     sync.Mutex
	events []domain.ProposalEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) InsertEvent(_ context.Context, event *domain.ProposalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// Events returns a snapshot of every recorded event in insertion order.
func (r *AuditRepository) Events() []domain.ProposalEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ProposalEvent(nil), r.events...)
}
