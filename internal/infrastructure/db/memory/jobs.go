package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*domain.Job)}
}

func (r *JobRepository) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == "" {
		job.ID = newID()
	}
	cp := *job
	cp.SkillsRequired = append([]string(nil), job.SkillsRequired...)
	r.jobs[cp.ID] = &cp
	return nil
}

func (r *JobRepository) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

// List filters with domain.JobFilter.Matches, then sorts newest first with
// the id as tie-break.
func (r *JobRepository) List(_ context.Context, f domain.JobFilter) ([]*domain.Job, int64, error) {
	r.mu.RLock()
	matched := make([]*domain.Job, 0)
	for _, j := range r.jobs {
		if f.Matches(j) {
			cp := *j
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID > matched[b].ID
	})

	total := int64(len(matched))
	start := f.Offset()
	if start < 0 || start >= len(matched) {
		return []*domain.Job{}, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Limit < end-start {
		end = start + f.Limit
	}
	return matched[start:end], total, nil
}

func (r *JobRepository) Delete(_ context.Context, id, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok || j.ClientID != clientID {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) IncrementProposalCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ProposalsCount++
	j.UpdatedAt = time.Now().UTC()
	return nil
}
