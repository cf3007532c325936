package handler

import (
	"context"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

type fixedVerifier struct{ user *domain.User }

func (v fixedVerifier) Verify(context.Context, string) (*domain.User, error) { return v.user, nil }

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, token string) (*ports.AuthResult, error)
	logoutFn   func(ctx context.Context, token string) error
	changeFn   func(ctx context.Context, actor *domain.User, current, next string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) (*ports.AuthResult, error) {
	return s.changeFn(ctx, actor, current, next)
}

type stubJobService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateJobInput) (*domain.Job, error)
	listFn   func(ctx context.Context, f domain.JobFilter) (*ports.JobList, error)
	deleteFn func(ctx context.Context, jobID, actorID string) error
}

func (s *stubJobService) Create(ctx context.Context, actor *domain.User, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubJobService) List(ctx context.Context, f domain.JobFilter) (*ports.JobList, error) {
	return s.listFn(ctx, f)
}

func (s *stubJobService) Delete(ctx context.Context, jobID, actorID string) error {
	return s.deleteFn(ctx, jobID, actorID)
}

type stubProposalService struct {
	createFn func(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error)
	listFn   func(ctx context.Context, jobID, requesterID string) (*ports.ProposalList, error)
	updateFn func(ctx context.Context, id, requesterID string, status domain.ProposalStatus) (*domain.Proposal, error)
}

func (s *stubProposalService) Create(ctx context.Context, in ports.CreateProposalInput) (*domain.Proposal, error) {
	return s.createFn(ctx, in)
}

func (s *stubProposalService) ListByJob(ctx context.Context, jobID, requesterID string) (*ports.ProposalList, error) {
	return s.listFn(ctx, jobID, requesterID)
}

func (s *stubProposalService) UpdateStatus(ctx context.Context, id, requesterID string, status domain.ProposalStatus) (*domain.Proposal, error) {
	return s.updateFn(ctx, id, requesterID, status)
}
