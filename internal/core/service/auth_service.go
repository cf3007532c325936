package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// AuthService implements registration, login and refresh-token rotation.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenManager
	refresh ports.RefreshStore
	hasher  ports.PasswordHasher
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenManager,
	refresh ports.RefreshStore,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		refresh: refresh,
		hasher:  hasher,
		log:     log,
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	role := in.Role
	if role == "" {
		role = domain.RoleFreelancer
	}
	if !role.Valid() {
		return nil, domain.ErrBadRole
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.Upstream("find user by email", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Upstream("hash password", err)
	}

	now := s.now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Location:     domain.Location{Country: in.Country, City: in.City, Timezone: "UTC"},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, domain.Upstream("create user", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return s.openSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Upstream("find user by email", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Refresh exchanges a live refresh token for a new token pair. The old
// refresh token is consumed and cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrNoToken
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken.Wrap(err)
	}

	userID, ok, err := s.refresh.Consume(ctx, claims.TokenID)
	if err != nil {
		return nil, domain.Upstream("consume refresh token", err)
	}
	if !ok || userID != claims.SubjectID {
		s.log.Warn().Str("user_id", claims.SubjectID).Msg("refresh token reuse or revoked token")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSubjectGone
		}
		return nil, domain.Upstream("find user", err)
	}
	if user.PasswordChangedAfter(claims.IssuedAt) {
		return nil, domain.ErrStaleSession
	}

	return s.openSession(ctx, user)
}

// Logout revokes the refresh token. Unknown or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.refresh.Revoke(ctx, claims.TokenID); err != nil {
		return domain.Upstream("revoke refresh token", err)
	}
	return nil
}

// ChangePassword replaces the actor's password. Access tokens issued before
// the change become stale; the returned pair is issued after it.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) (*ports.AuthResult, error) {
	if actor == nil {
		return nil, domain.ErrNoToken
	}
	if next == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSubjectGone
		}
		return nil, domain.Upstream("find user", err)
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return nil, domain.Upstream("hash password", err)
	}

	changedAt := s.now().UTC()
	if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		return nil, domain.Upstream("update password", err)
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.UpdatedAt = changedAt

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, domain.Upstream("issue access token", err)
	}

	refresh, claims, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, domain.Upstream("issue refresh token", err)
	}
	if err := s.refresh.Save(ctx, claims.TokenID, user.ID, claims.ExpiresAt.Sub(s.now())); err != nil {
		return nil, domain.Upstream("store refresh token", err)
	}

	return &ports.AuthResult{
		User:             user,
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: claims.ExpiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
