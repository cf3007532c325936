package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
	"github.com/gigboard/marketplace-api/internal/infrastructure/db/memory"
)

var errStoreDown = errors.New("connection refused")

// ---------------------------------------------------------------------------
// Token stub: opaque strings mapped to claims, issued at the stub's clock.
// ---------------------------------------------------------------------------

type stubTokens struct {
	mu      sync.Mutex
	now     func() time.Time
	seq     int
	access  map[string]*ports.SessionClaims
	refresh map[string]*ports.RefreshClaims
}

func newStubTokens(now func() time.Time) *stubTokens {
	return &stubTokens{
		now:     now,
		access:  make(map[string]*ports.SessionClaims),
		refresh: make(map[string]*ports.RefreshClaims),
	}
}

// mint registers an access token for subjectID issued at issuedAt.
func (s *stubTokens) mint(subjectID string, issuedAt time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	raw := fmt.Sprintf("access-%d", s.seq)
	s.access[raw] = &ports.SessionClaims{SubjectID: subjectID, IssuedAt: issuedAt}
	return raw
}

func (s *stubTokens) IssueAccess(u *domain.User) (string, error) {
	raw := s.mint(u.ID, s.now())
	s.mu.Lock()
	s.access[raw].Role = u.Role
	s.mu.Unlock()
	return raw, nil
}

func (s *stubTokens) IssueRefresh(userID string) (string, *ports.RefreshClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := s.now()
	claims := &ports.RefreshClaims{
		SubjectID: userID,
		TokenID:   fmt.Sprintf("jti-%d", s.seq),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	raw := "refresh-" + claims.TokenID
	s.refresh[raw] = claims
	return raw, claims, nil
}

func (s *stubTokens) VerifyAccess(raw string) (*ports.SessionClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.access[raw]
	if !ok {
		return nil, ports.ErrTokenInvalid
	}
	cp := *c
	return &cp, nil
}

func (s *stubTokens) VerifyRefresh(raw string) (*ports.RefreshClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.refresh[raw]
	if !ok {
		return nil, ports.ErrTokenInvalid
	}
	cp := *c
	return &cp, nil
}

// ---------------------------------------------------------------------------
// Failing collaborators
// ---------------------------------------------------------------------------

type downUsers struct{ ports.UserRepository }

func (downUsers) FindByID(context.Context, string) (*domain.User, error) { return nil, errStoreDown }

type downJobs struct{ ports.JobRepository }

func (downJobs) FindByID(context.Context, string) (*domain.Job, error) { return nil, errStoreDown }
func (downJobs) List(context.Context, domain.JobFilter) ([]*domain.Job, int64, error) {
	return nil, 0, errStoreDown
}

// counterDownJobs delegates everything except the proposal counter.
type counterDownJobs struct{ ports.JobRepository }

func (counterDownJobs) IncrementProposalCount(context.Context, string) error { return errStoreDown }

// ---------------------------------------------------------------------------
// Auditor
// ---------------------------------------------------------------------------

type recordingAuditor struct {
	mu     sync.Mutex
	events []domain.ProposalEvent
}

func (a *recordingAuditor) Record(e domain.ProposalEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAuditor) snapshot() []domain.ProposalEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ProposalEvent(nil), a.events...)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type fixture struct {
	store     *memory.Store
	audit     *recordingAuditor
	jobs      *JobService
	proposals *ProposalService
}

func newFixture() *fixture {
	store := memory.NewStore()
	audit := &recordingAuditor{}
	return &fixture{
		store:     store,
		audit:     audit,
		jobs:      NewJobService(store.Jobs, zerolog.Nop()),
		proposals: NewProposalService(store.Jobs, store.Proposals, store.Users, audit, zerolog.Nop()),
	}
}

func (f *fixture) user(role domain.Role, email string) *domain.User {
	u, err := f.store.Users.Create(context.Background(), &domain.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Role:      role,
	})
	if err != nil {
		panic(err)
	}
	return u
}

func (f *fixture) job(owner *domain.User, title string, skills ...string) *domain.Job {
	j, err := f.jobs.Create(context.Background(), owner, ports.CreateJobInput{
		Title:          title,
		Description:    "description",
		Category:       "web",
		SkillsRequired: skills,
		Budget:         500,
	})
	if err != nil {
		panic(err)
	}
	return j
}
