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

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger, now: time.Now}
}

// Create posts a new open job owned by actor.
func (s *JobService) Create(ctx context.Context, actor *domain.User, in ports.CreateJobInput) (*domain.Job, error) {
	if actor == nil {
		return nil, domain.ErrNoToken
	}

	now := s.now().UTC()
	job := &domain.Job{
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		SkillsRequired: in.SkillsRequired,
		Budget:         in.Budget,
		Deadline:       in.Deadline,
		ClientID:       actor.ID,
		Status:         domain.JobStatusOpen,
		ProposalsCount: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("client_id", actor.ID).Msg("failed to create job")
		return nil, domain.Upstream("create job", err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("client_id", actor.ID).Msg("job created")
	return job, nil
}

// List returns one page of jobs matching filter together with the total
// number of matches.
func (s *JobService) List(ctx context.Context, filter domain.JobFilter) (*ports.JobList, error) {
	if filter.MinBudget != nil && filter.MaxBudget != nil && *filter.MinBudget > *filter.MaxBudget {
		return nil, domain.ErrBadBudgetRange
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if !filter.PageInRange() {
		return nil, domain.ErrBadPage
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Upstream("list jobs", err)
	}
	if items == nil {
		items = []*domain.Job{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &ports.JobList{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Delete removes a job. Only the owning client may delete it.
func (s *JobService) Delete(ctx context.Context, jobID, actorID string) error {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return err
		}
		return domain.Upstream("find job", err)
	}

	if err := access.AssertOwner(job.ClientID, actorID); err != nil {
		s.logger.Warn().Str("job_id", jobID).Str("user_id", actorID).Msg("job deletion denied")
		return err
	}

	if err := s.repo.Delete(ctx, jobID, actorID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return err
		}
		return domain.Upstream("delete job", err)
	}

	s.logger.Info().Str("job_id", jobID).Msg("job deleted")
	return nil
}
