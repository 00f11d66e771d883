package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/support-agent/internal/auth"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// AuthService issues operator tokens for the internal API.
type AuthService struct {
	tokenMgr     *auth.TokenManager
	passwordHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		passwordHash: cfg.OperatorPasswordHash,
	}
}

// TokenManager exposes the shared token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// LoginOperator checks the shared operator password and returns a bearer token.
func (s *AuthService) LoginOperator(ctx context.Context, operatorID, password string) (string, time.Time, error) {
	if strings.TrimSpace(operatorID) == "" || password == "" {
		return "", time.Time{}, errorutil.NewValidationError("operator_id and password required", nil)
	}
	if s.passwordHash == "" {
		return "", time.Time{}, errorutil.NewForbidden("operator login disabled")
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, errorutil.NewUnauthorized("invalid credentials")
	}
	return s.tokenMgr.GenerateToken(operatorID, domain.SubjectTypeOperator)
}
