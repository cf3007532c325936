package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

type ProposalRepository struct {
	mu        sync.RWMutex
	proposals map[string]*domain.Proposal
	// pairs indexes job_id + freelancer_id the way the unique index does.
	pairs map[[2]string]string
}

func NewProposalRepository() *ProposalRepository {
	return &ProposalRepository{
		proposals: make(map[string]*domain.Proposal),
		pairs:     make(map[[2]string]string),
	}
}

func (r *ProposalRepository) Create(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]string{p.JobID, p.FreelancerID}
	if _, ok := r.pairs[key]; ok {
		return domain.ErrDuplicateProposal
	}

	if p.ID == "" {
		p.ID = newID()
	}
	cp := *p
	r.proposals[cp.ID] = &cp
	r.pairs[key] = cp.ID
	return nil
}

func (r *ProposalRepository) FindByID(_ context.Context, id string) (*domain.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProposalRepository) ListByJob(_ context.Context, jobID string) ([]*domain.Proposal, int64, error) {
	r.mu.RLock()
	out := make([]*domain.Proposal, 0)
	for _, p := range r.proposals {
		if p.JobID == jobID {
			cp := *p
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, int64(len(out)), nil
}

// UpdateStatus checks and writes under one lock.
func (r *ProposalRepository) UpdateStatus(_ context.Context, id string, status domain.ProposalStatus) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	if p.Status.Absorbing() {
		return nil, domain.ErrAlreadyAccepted
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()

	cp := *p
	return &cp, nil
}
