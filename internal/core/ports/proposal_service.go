package ports

import (
	"context"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// CreateProposalInput carries a freelancer's bid.
type CreateProposalInput struct {
	JobID        string
	FreelancerID string
	CoverLetter  string
	BidAmount    float64
}

// ProposalView is a proposal with its freelancer's public profile attached.
// Freelancer is nil when the account no longer exists.
type ProposalView struct {
	*domain.Proposal
	Freelancer *domain.PublicProfile
}

// ProposalList is every proposal of a job.
type ProposalList struct {
	Items []ProposalView
	Total int64
}

// ProposalService defines the proposal workflow.
type ProposalService interface {
	Create(ctx context.Context, in CreateProposalInput) (*domain.Proposal, error)
	ListByJob(ctx context.Context, jobID, requesterID string) (*ProposalList, error)
	UpdateStatus(ctx context.Context, proposalID, requesterID string, status domain.ProposalStatus) (*domain.Proposal, error)
}
