package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds signing secrets and lifetimes. RefreshSecret falls back to
// AccessSecret when empty.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// accessClaims is the payload of an access token.
type accessClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims is the payload of a refresh token.
type refreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens. It implements ports.TokenManager.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("token: access secret is required")
	}
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.AccessSecret
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}, nil
}

func (m *Manager) IssueAccess(user *domain.User) (string, error) {
	now := m.now()
	claims := &accessClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

func (m *Manager) IssueRefresh(userID string) (string, *ports.RefreshClaims, error) {
	now := m.now()
	jti := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	expiresAt := now.Add(m.refreshTTL)
	claims := &refreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", nil, err
	}

	return signed, &ports.RefreshClaims{
		SubjectID: userID,
		TokenID:   jti,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyAccess checks signature, algorithm and expiry, and requires iat.
func (m *Manager) VerifyAccess(raw string) (*ports.SessionClaims, error) {
	claims := &accessClaims{}
	if err := m.parse(raw, claims, m.accessSecret); err != nil {
		return nil, err
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}
	if subject == "" || claims.IssuedAt == nil {
		return nil, ports.ErrTokenInvalid
	}

	return &ports.SessionClaims{
		SubjectID: subject,
		Role:      domain.Role(claims.Role),
		IssuedAt:  claims.IssuedAt.Time,
	}, nil
}

func (m *Manager) VerifyRefresh(raw string) (*ports.RefreshClaims, error) {
	claims := &refreshClaims{}
	if err := m.parse(raw, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.ID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ports.ErrTokenInvalid
	}

	return &ports.RefreshClaims{
		SubjectID: claims.UserID,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (m *Manager) parse(raw string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %v", ports.ErrTokenExpired, err)
		}
		return fmt.Errorf("%w: %v", ports.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return ports.ErrTokenInvalid
	}
	return nil
}
