package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/casaviva/hogar-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

const (
	RoleAdmin = "admin"
	// the back-office has a single account
	adminUserID uint = 1
)

// TokenBlacklist records revoked access tokens
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, expiry time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService guards the back-office with a single admin account whose
// password comes from configuration.
type AuthService interface {
	Login(email, password string) (*util.TokenPair, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}

type authService struct {
	adminEmail    string
	passwordHash  string
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	blacklist     TokenBlacklist
}

// NewAuthService hashes the admin password once at startup
func NewAuthService(
	adminEmail, adminPassword string,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
	blacklist TokenBlacklist,
) (AuthService, error) {
	hash, err := util.HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	return &authService{
		adminEmail:    strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash:  hash,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		blacklist:     blacklist,
	}, nil
}

func (s *authService) Login(email, password string) (*util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	// the hash is compared whatever the email
	passwordOK := util.VerifyPassword(s.passwordHash, password)
	if email != s.adminEmail || !passwordOK {
		logger.Warn("Admin login failed", map[string]interface{}{
			"email": email,
		})
		return nil, ErrInvalidCredentials
	}

	return s.issue()
}

func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != util.TokenTypeRefresh || claims.Role != RoleAdmin {
		return nil, ErrInvalidRefresh
	}
	return s.issue()
}

func (s *authService) issue() (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		adminUserID,
		s.adminEmail,
		RoleAdmin,
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"email": s.adminEmail,
		})
		return nil, err
	}

	logger.Info("Admin tokens issued", map[string]interface{}{
		"email": s.adminEmail,
	})
	return tokens, nil
}

// Logout blacklists accessToken until it would have expired anyway
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := util.ValidateToken(accessToken, s.jwtSecret)
	if err != nil {
		// expired or malformed tokens are already unusable
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, accessToken, ttl); err != nil {
		logger.Error("Failed to revoke access token", err)
		return err
	}

	logger.Info("Admin logged out", map[string]interface{}{
		"email": claims.Email,
	})
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	return s.blacklist.IsRevoked(ctx, accessToken)
}

// MemoryTokenBlacklist is the in-process TokenBlacklist used when Redis is
// not available. Revocations are lost on restart.
type MemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{entries: make(map[string]time.Time)}
}

func (b *MemoryTokenBlacklist) Revoke(ctx context.Context, token string, expiry time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for t, until := range b.entries {
		if now.After(until) {
			delete(b.entries, t)
		}
	}
	b.entries[token] = now.Add(expiry)
	return nil
}

func (b *MemoryTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.entries[token]
	return ok && time.Now().Before(until), nil
}
