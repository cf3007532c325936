package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{AccessSecret: "access-secret", RefreshSecret: "refresh-secret", AccessTTL: time.Minute})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestManager_AccessRoundTrip(t *testing.T) {
	m := newTestManager(t)
	user := &domain.User{ID: "user_1", Role: domain.RoleFreelancer}

	raw, err := m.IssueAccess(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.VerifyAccess(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != "user_1" || claims.Role != domain.RoleFreelancer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.IssuedAt.IsZero() {
		t.Fatalf("expected issued-at")
	}
}

func TestManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatalf("expected error without access secret")
	}
}

func TestManager_ExpiredAccessToken(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := m.IssueAccess(&domain.User{ID: "user_1", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.VerifyAccess(raw); !errors.Is(err, ports.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, _ := NewManager(Config{AccessSecret: "other"})

	raw, _ := other.IssueAccess(&domain.User{ID: "user_1", Role: domain.RoleClient})
	if _, err := m.VerifyAccess(raw); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_Malformed(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.VerifyAccess("not-a-token"); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": "user_1",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Minute).Unix(),
	})
	raw, err := tok.SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.VerifyAccess(raw); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_RequiresIssuedAt(t *testing.T) {
	m := newTestManager(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "user_1",
		"exp":    time.Now().Add(time.Minute).Unix(),
	})
	raw, _ := tok.SignedString([]byte("access-secret"))
	if _, err := m.VerifyAccess(raw); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without iat, got %v", err)
	}
}

func TestManager_RefreshRoundTrip(t *testing.T) {
	m := newTestManager(t)

	raw, issued, err := m.IssueRefresh("user_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.TokenID == "" {
		t.Fatalf("expected token id")
	}

	claims, err := m.VerifyRefresh(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != "user_1" || claims.TokenID != issued.TokenID {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Refresh tokens are signed with their own secret.
	if _, err := m.VerifyAccess(raw); err == nil {
		t.Fatalf("refresh token must not verify as access token")
	}
}
