package domain

import (
	"math"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusClose      JobStatus = "close"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCanceled   JobStatus = "canceled"
)

// Job is a posted work item owned by a client.
type Job struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	SkillsRequired []string   `json:"skills_required"`
	Budget         float64    `json:"budget"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	ClientID       string     `json:"client_id"`
	Status         JobStatus  `json:"status"`
	ProposalsCount int64      `json:"proposals_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// JobFilter carries the optional listing predicates. Zero values mean
// "no constraint"; all set predicates must hold.
type JobFilter struct {
	Category  string
	Title     string   // case-insensitive substring
	Skills    []string // job must require every one of these
	MinBudget *float64 // inclusive
	MaxBudget *float64 // inclusive
	Page      int      // 1-based
	Limit     int
}

// Matches reports whether job satisfies every predicate of f. Pagination
// fields are ignored.
func (f JobFilter) Matches(job *Job) bool {
	if f.Category != "" && job.Category != f.Category {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(f.Title)) {
		return false
	}
	if len(f.Skills) > 0 {
		have := make(map[string]struct{}, len(job.SkillsRequired))
		for _, s := range job.SkillsRequired {
			have[s] = struct{}{}
		}
		for _, want := range f.Skills {
			if _, ok := have[want]; !ok {
				return false
			}
		}
	}
	if f.MinBudget != nil && job.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && job.Budget > *f.MaxBudget {
		return false
	}
	return true
}

// Offset is the number of matching jobs skipped before the current page.
// It saturates at math.MaxInt instead of wrapping.
func (f JobFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

// PageInRange reports whether the page's offset fits in an int.
func (f JobFilter) PageInRange() bool {
	return f.Page <= 1 || f.Limit <= 0 || f.Page-1 <= math.MaxInt/f.Limit
}
