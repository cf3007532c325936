package ports

import (
	"context"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data needed to open an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
	Country   string
	City      string
}

// AuthResult is returned by every operation that opens a session.
type AuthResult struct {
	User             *domain.User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionVerifier resolves a bearer credential to an identity.
type SessionVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.User, error)
}

// AuthService defines account and session use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, actor *domain.User, current, next string) (*AuthResult, error)
}
