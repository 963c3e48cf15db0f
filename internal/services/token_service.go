package services

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/metrics"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPayload is the identity carried by both token kinds.
type TokenPayload struct {
	UserID   uuid.UUID   `json:"userId"`
	TenantID uuid.UUID   `json:"tenantId"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	TokenPayload
	jwt.RegisteredClaims
}

type TokenService interface {
	IssueAccessToken(payload TokenPayload) (string, error)
	IssueRefreshToken(payload TokenPayload) (string, error)
	VerifyAccessToken(token string) (*TokenPayload, error)
	VerifyRefreshToken(token string) (*TokenPayload, error)
	Revoke(ctx context.Context, token string) error
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

type tokenService struct {
	cfg       TokenConfig
	tokenRepo repositories.RefreshTokenRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewTokenService(cfg TokenConfig, tokenRepo repositories.RefreshTokenRepository, m *metrics.Metrics) TokenService {
	return &tokenService{cfg: cfg, tokenRepo: tokenRepo, metrics: m, now: time.Now}
}

func (s *tokenService) AccessTTL() time.Duration  { return s.cfg.AccessTTL }
func (s *tokenService) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }

func (s *tokenService) IssueAccessToken(payload TokenPayload) (string, error) {
	token, err := s.sign(payload, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return "", err
	}
	s.metrics.TokenIssued("access")
	return token, nil
}

// IssueRefreshToken only signs; the caller persists the session row.
func (s *tokenService) IssueRefreshToken(payload TokenPayload) (string, error) {
	token, err := s.sign(payload, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return "", err
	}
	s.metrics.TokenIssued("refresh")
	return token, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*TokenPayload, error) {
	return s.verify(token, s.cfg.AccessSecret)
}

func (s *tokenService) VerifyRefreshToken(token string) (*TokenPayload, error) {
	return s.verify(token, s.cfg.RefreshSecret)
}

// Revoke deletes every session row holding the token. Unknown tokens are not an error.
func (s *tokenService) Revoke(ctx context.Context, token string) error {
	if _, err := s.tokenRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *tokenService) sign(payload TokenPayload, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := TokenClaims{
		TokenPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// Unique per token so two tokens issued in the same second never collide.
			ID: uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

func (s *tokenService) verify(token, secret string) (*TokenPayload, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.TenantID == uuid.Nil || !claims.Role.Valid() {
		return nil, common.ErrInvalidToken
	}
	return &claims.TokenPayload, nil
}
