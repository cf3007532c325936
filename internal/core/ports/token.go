package ports

import (
	"context"
	"errors"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// Token verification failures.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token malformed or signature invalid")
)

// SessionClaims is what a verified access token asserts.
type SessionClaims struct {
	SubjectID string
	Role      domain.Role
	IssuedAt  time.Time
}

// RefreshClaims is what a verified refresh token asserts.
type RefreshClaims struct {
	SubjectID string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenVerifier checks signature and expiry of bearer credentials.
type TokenVerifier interface {
	VerifyAccess(raw string) (*SessionClaims, error)
	VerifyRefresh(raw string) (*RefreshClaims, error)
}

// TokenIssuer signs new credentials.
type TokenIssuer interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(userID string) (string, *RefreshClaims, error)
}

// TokenManager both issues and verifies tokens.
type TokenManager interface {
	TokenIssuer
	TokenVerifier
}

// RefreshStore tracks live refresh tokens so they can be rotated and revoked.
type RefreshStore interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// Consume deletes the token and returns the user it belonged to.
	// ok is false when the token is unknown, expired or already used.
	Consume(ctx context.Context, tokenID string) (userID string, ok bool, err error)
	Revoke(ctx context.Context, tokenID string) error
}

// PasswordHasher is the one-way credential hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(candidate, hash string) bool
}
