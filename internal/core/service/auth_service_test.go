package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
	"github.com/gigboard/marketplace-api/internal/infrastructure/db/memory"
)

type authFixture struct {
	svc     *AuthService
	session *SessionService
	tokens  *stubTokens
	store   *memory.Store
	clock   time.Time
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		store: memory.NewStore(),
		clock: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return f.clock }
	f.tokens = newStubTokens(now)
	f.svc = NewAuthService(f.store.Users, f.tokens, f.store.Refresh, NewBcryptHasher(4), zerolog.Nop())
	f.svc.now = now
	f.session = NewSessionService(f.tokens, f.store.Users, zerolog.Nop())
	return f
}

func (f *authFixture) register(t *testing.T, email string, role domain.Role) *ports.AuthResult {
	t.Helper()
	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     email,
		Password:  "s3cret-pass",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return res
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()
	res := f.register(t, "  Ana@Example.com ", "")

	if res.User.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleFreelancer {
		t.Errorf("expected default role freelancer, got %s", res.User.Role)
	}
	if res.User.PasswordHash == "s3cret-pass" || res.User.PasswordHash == "" {
		t.Errorf("password must be stored hashed")
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Errorf("expected a token pair")
	}

	u, err := f.session.Verify(context.Background(), res.AccessToken)
	if err != nil || u.ID != res.User.ID {
		t.Fatalf("issued access token must verify, got %v", err)
	}
}

func TestAuthService_RegisterRejections(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "taken@example.com", domain.RoleClient)

	cases := []struct {
		name string
		in   ports.RegisterInput
		want error
	}{
		{"missing email", ports.RegisterInput{Password: "x"}, domain.ErrMissingFields},
		{"missing password", ports.RegisterInput{Email: "a@example.com"}, domain.ErrMissingFields},
		{"unknown role", ports.RegisterInput{Email: "b@example.com", Password: "x", Role: "superuser"}, domain.ErrBadRole},
		{"email taken", ports.RegisterInput{Email: "TAKEN@example.com", Password: "x"}, domain.ErrUserExists},
	}

	for _, tc := range cases {
		if _, err := f.svc.Register(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "ana@example.com", domain.RoleClient)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "ANA@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.Role != domain.RoleClient {
		t.Errorf("expected client role, got %s", res.User.Role)
	}

	if _, err := f.svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_RefreshRotates(t *testing.T) {
	f := newAuthFixture()
	first := f.register(t, "ana@example.com", domain.RoleClient)
	ctx := context.Background()

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh token must rotate")
	}

	if _, err := f.svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("replayed refresh token: expected ErrInvalidToken, got %v", err)
	}
	if _, err := f.svc.Refresh(ctx, ""); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("empty refresh token: expected ErrNoToken, got %v", err)
	}
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	f := newAuthFixture()
	res := f.register(t, "ana@example.com", domain.RoleClient)
	ctx := context.Background()

	if err := f.svc.Logout(ctx, res.RefreshToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Refresh(ctx, res.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
	if err := f.svc.Logout(ctx, "not-a-token"); err != nil {
		t.Fatalf("logout with an unknown token must be a no-op, got %v", err)
	}
}

func TestAuthService_ChangePasswordStalesOldSessions(t *testing.T) {
	f := newAuthFixture()
	old := f.register(t, "ana@example.com", domain.RoleClient)
	ctx := context.Background()

	f.clock = f.clock.Add(5 * time.Second)

	if _, err := f.svc.ChangePassword(ctx, old.User, "wrong", "n3w-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: expected ErrInvalidCredentials, got %v", err)
	}

	fresh, err := f.svc.ChangePassword(ctx, old.User, "s3cret-pass", "n3w-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.session.Verify(ctx, old.AccessToken); !errors.Is(err, domain.ErrStaleSession) {
		t.Fatalf("old access token: expected ErrStaleSession, got %v", err)
	}
	if _, err := f.session.Verify(ctx, fresh.AccessToken); err != nil {
		t.Fatalf("new access token must verify, got %v", err)
	}
	if _, err := f.svc.Refresh(ctx, old.RefreshToken); !errors.Is(err, domain.ErrStaleSession) {
		t.Fatalf("old refresh token: expected ErrStaleSession, got %v", err)
	}
	if _, err := f.svc.Login(ctx, "ana@example.com", "n3w-pass"); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}
