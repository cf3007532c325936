package ports

import (
	"context"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// CreateJobInput carries all data needed to post a job.
type CreateJobInput struct {
	Title          string
	Description    string
	Category       string
	SkillsRequired []string
	Budget         float64
	Deadline       *time.Time
}

// JobList is one page of the job listing.
type JobList struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// JobService defines use-case operations for jobs.
type JobService interface {
	Create(ctx context.Context, actor *domain.User, in CreateJobInput) (*domain.Job, error)
	List(ctx context.Context, filter domain.JobFilter) (*JobList, error)
	Delete(ctx context.Context, jobID, actorID string) error
}
