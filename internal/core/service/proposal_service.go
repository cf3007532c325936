package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace-api/internal/core/access"
	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

type nopAuditor struct{}

func (nopAuditor) Record(domain.ProposalEvent) {}

// ProposalService is the proposal workflow engine.
type ProposalService struct {
	jobs      ports.JobRepository
	proposals ports.ProposalRepository
	users     ports.UserRepository
	audit     ports.ProposalAuditor
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProposalService wires the workflow. audit may be nil.
func NewProposalService(
	jobs ports.JobRepository,
	proposals ports.ProposalRepository,
	users ports.UserRepository,
	audit ports.ProposalAuditor,
	logger zerolog.Logger,
) *ProposalService {
	if audit == nil {
		audit = nopAuditor{}
	}
	return &ProposalService{
		jobs:      jobs,
		proposals: proposals,
		users:     users,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
	}
}

// Create submits a pending proposal. Checks run in order: job exists, the
// applicant does not own the job, the applicant is a freelancer. The job's
// proposal counter is bumped only after the insert succeeded.
func (s *ProposalService) Create(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error) {
	job, err := s.findJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	if job.ClientID == in.FreelancerID {
		return nil, domain.ErrSelfApply
	}

	freelancer, err := s.users.FindByID(ctx, in.FreelancerID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.Upstream("find freelancer", err)
	}
	if err != nil || freelancer.Role != domain.RoleFreelancer {
		return nil, domain.ErrRoleNotPermitted
	}

	now := s.now().UTC()
	proposal := &domain.Proposal{
		JobID:        job.ID,
		FreelancerID: in.FreelancerID,
		CoverLetter:  in.CoverLetter,
		BidAmount:    in.BidAmount,
		Status:       domain.ProposalPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		if errors.Is(err, domain.ErrDuplicateProposal) {
			return nil, err
		}
		return nil, domain.Upstream("create proposal", err)
	}

	if err := s.jobs.IncrementProposalCount(ctx, job.ID); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Str("proposal_id", proposal.ID).Msg("failed to bump proposal counter")
		return nil, domain.Upstream("increment proposal count", err)
	}

	s.audit.Record(domain.ProposalEvent{
		ProposalID: proposal.ID,
		JobID:      job.ID,
		ActorID:    in.FreelancerID,
		To:         domain.ProposalPending,
		Timestamp:  now,
	})

	s.logger.Info().Str("proposal_id", proposal.ID).Str("job_id", job.ID).Msg("proposal created")
	return proposal, nil
}

// ListByJob returns every proposal of a job to the job's owner, each with
// its freelancer's public profile.
func (s *ProposalService) ListByJob(ctx context.Context, jobID, requesterID string) (*ports.ProposalList, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := access.AssertOwner(job.ClientID, requesterID); err != nil {
		s.logger.Warn().Str("job_id", jobID).Str("user_id", requesterID).Msg("proposal listing denied")
		return nil, err
	}

	proposals, total, err := s.proposals.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, domain.Upstream("list proposals", err)
	}

	profiles, err := s.freelancerProfiles(ctx, proposals)
	if err != nil {
		return nil, err
	}

	items := make([]ports.ProposalView, 0, len(proposals))
	for _, p := range proposals {
		view := ports.ProposalView{Proposal: p}
		if prof, ok := profiles[p.FreelancerID]; ok {
			view.Freelancer = &prof
		}
		items = append(items, view)
	}

	return &ports.ProposalList{Items: items, Total: total}, nil
}

// UpdateStatus moves a proposal to status on behalf of the job's owner.
func (s *ProposalService) UpdateStatus(ctx context.Context, proposalID, requesterID string, status domain.ProposalStatus) (*domain.Proposal, error) {
	if _, err := domain.ParseProposalStatus(string(status)); err != nil {
		return nil, err
	}

	proposal, err := s.proposals.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, domain.ErrProposalNotFound) {
			return nil, err
		}
		return nil, domain.Upstream("find proposal", err)
	}

	job, err := s.jobs.FindByID(ctx, proposal.JobID)
	if err != nil {
		if !errors.Is(err, domain.ErrJobNotFound) {
			return nil, domain.Upstream("find job", err)
		}
		// A proposal whose job is gone has no owner to act on it.
		return nil, domain.ErrNotOwner
	}

	if err := access.AssertOwner(job.ClientID, requesterID); err != nil {
		s.logger.Warn().Str("proposal_id", proposalID).Str("user_id", requesterID).Msg("proposal status change denied")
		return nil, err
	}

	if err := proposal.Status.CheckTransition(status); err != nil {
		return nil, err
	}

	updated, err := s.proposals.UpdateStatus(ctx, proposal.ID, status)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAccepted) || errors.Is(err, domain.ErrProposalNotFound) {
			return nil, err
		}
		return nil, domain.Upstream("update proposal status", err)
	}

	s.audit.Record(domain.ProposalEvent{
		ProposalID: proposal.ID,
		JobID:      job.ID,
		ActorID:    requesterID,
		From:       proposal.Status,
		To:         status,
		Timestamp:  s.now().UTC(),
	})

	s.logger.Info().
		Str("proposal_id", proposal.ID).
		Str("from", string(proposal.Status)).
		Str("to", string(status)).
		Msg("proposal status updated")
	return updated, nil
}

func (s *ProposalService) findJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, domain.Upstream("find job", err)
	}
	return job, nil
}

func (s *ProposalService) freelancerProfiles(ctx context.Context, proposals []*domain.Proposal) (map[string]domain.PublicProfile, error) {
	out := make(map[string]domain.PublicProfile, len(proposals))
	if len(proposals) == 0 {
		return out, nil
	}

	seen := make(map[string]struct{}, len(proposals))
	ids := make([]string, 0, len(proposals))
	for _, p := range proposals {
		if _, ok := seen[p.FreelancerID]; ok {
			continue
		}
		seen[p.FreelancerID] = struct{}{}
		ids = append(ids, p.FreelancerID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Upstream("find freelancers", err)
	}
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out, nil
}
