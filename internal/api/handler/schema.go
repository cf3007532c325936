package handler

import (
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// errorResponse mirrors the envelope written by the API error handler. It is
// referenced by the swagger annotations.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Auth ---

type locationRequest struct {
	Country string `json:"country" validate:"required"`
	City    string `json:"city"    validate:"required"`
}

type registerRequest struct {
	FirstName string          `json:"first_name" validate:"required,min=2"`
	LastName  string          `json:"last_name"  validate:"required,min=2"`
	Email     string          `json:"email"      validate:"required,email"`
	Password  string          `json:"password"   validate:"required,min=8"`
	Role      string          `json:"role"       validate:"omitempty,oneof=admin client freelancer"`
	Location  locationRequest `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type userData struct {
	User *domain.User `json:"user"`
}

type authResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   userData `json:"data"`
}

type meResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// --- Jobs ---

type createJobRequest struct {
	Title          string     `json:"title"           validate:"required,min=10"`
	Description    string     `json:"description"     validate:"required,min=50"`
	Category       string     `json:"category"        validate:"required"`
	SkillsRequired []string   `json:"skills_required" validate:"required,min=1,dive,required"`
	Budget         float64    `json:"budget"          validate:"required,gt=0"`
	Deadline       *time.Time `json:"deadline"`
}

type jobResponse struct {
	Message string      `json:"message"`
	Job     *domain.Job `json:"job"`
}

type listJobsResponse struct {
	TotalJobs  int64         `json:"total_jobs"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Jobs       []*domain.Job `json:"jobs"`
}

// --- Proposals ---

type createProposalRequest struct {
	CoverLetter string  `json:"cover_letter" validate:"required"`
	BidAmount   float64 `json:"bid_amount"   validate:"gte=0"`
}

type updateProposalStatusRequest struct {
	Status string `json:"status"`
}

type proposalItem struct {
	*domain.Proposal
	Freelancer *domain.PublicProfile `json:"freelancer,omitempty"`
}

type proposalData struct {
	Proposal *domain.Proposal `json:"proposal"`
}

type proposalResponse struct {
	Status string       `json:"status"`
	Data   proposalData `json:"data"`
}

type proposalsData struct {
	Proposals []proposalItem `json:"proposals"`
}

type listProposalsResponse struct {
	Status string        `json:"status"`
	Totals int64         `json:"totals"`
	Data   proposalsData `json:"data"`
}
