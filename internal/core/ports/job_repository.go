package ports

import (
	"context"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	// FindByID returns domain.ErrJobNotFound when the job does not exist.
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns one page of jobs matching filter, newest first with ties
	// broken by id, and the unpaginated count of matches.
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, int64, error)
	// Delete removes the job only when it is owned by clientID.
	Delete(ctx context.Context, id, clientID string) error
	// IncrementProposalCount atomically adds one to the job's proposal counter.
	IncrementProposalCount(ctx context.Context, id string) error
}
