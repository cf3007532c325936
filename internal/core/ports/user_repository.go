package ports

import (
	"context"
	"time"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// UserRepository is the identity store.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error
}
