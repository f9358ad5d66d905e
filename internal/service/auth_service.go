package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/spec-kit/department-enricher/internal/auth"
	"github.com/spec-kit/department-enricher/internal/config"
	apperrors "github.com/spec-kit/department-enricher/pkg/util/errorutil"
)

// AuthService issues access tokens to collector clients.
type AuthService struct {
	tokenMgr         *auth.TokenManager
	clientID         string
	clientSecretHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenMgr:         auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		clientID:         cfg.ClientID,
		clientSecretHash: cfg.ClientSecretHash,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// IssueToken exchanges client credentials for a bearer token.
func (s *AuthService) IssueToken(_ context.Context, clientID, clientSecret string) (string, time.Time, error) {
	if s.clientSecretHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("client credentials not configured")
	}
	if subtle.ConstantTimeCompare([]byte(clientID), []byte(s.clientID)) != 1 {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid client credentials")
	}
	if err := auth.CompareSecret(s.clientSecretHash, clientSecret); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid client credentials")
	}
	return s.tokenMgr.GenerateToken(clientID, auth.ScopeEnrich)
}
