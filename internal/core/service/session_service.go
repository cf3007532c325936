package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// SessionService validates bearer credentials on protected requests.
type SessionService struct {
	tokens ports.TokenVerifier
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewSessionService(tokens ports.TokenVerifier, users ports.UserRepository, log zerolog.Logger) *SessionService {
	return &SessionService{tokens: tokens, users: users, log: log}
}

// Verify resolves rawToken to the user it was issued for. Checks run in
// order: presence, signature and expiry, subject existence, staleness.
func (s *SessionService) Verify(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrNoToken
	}

	claims, err := s.tokens.VerifyAccess(rawToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("access token rejected")
		return nil, domain.ErrInvalidToken.Wrap(err)
	}

	user, err := s.users.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("user_id", claims.SubjectID).Msg("token subject no longer exists")
			return nil, domain.ErrSubjectGone
		}
		return nil, domain.Upstream("verify session", err)
	}

	if user.PasswordChangedAfter(claims.IssuedAt) {
		return nil, domain.ErrStaleSession
	}

	return user, nil
}
