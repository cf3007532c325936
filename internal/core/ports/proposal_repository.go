package ports

import (
	"context"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	// Create returns domain.ErrDuplicateProposal when the freelancer already
	// has a proposal on the job. The check is enforced by the store.
	Create(ctx context.Context, p *domain.Proposal) error
	// FindByID returns domain.ErrProposalNotFound when missing.
	FindByID(ctx context.Context, id string) (*domain.Proposal, error)
	// ListByJob returns every proposal of the job, newest first, and their count.
	ListByJob(ctx context.Context, jobID string) ([]*domain.Proposal, int64, error)
	// UpdateStatus sets the status unless the stored proposal is already
	// accepted, in which case it returns domain.ErrAlreadyAccepted.
	UpdateStatus(ctx context.Context, id string, status domain.ProposalStatus) (*domain.Proposal, error)
}
