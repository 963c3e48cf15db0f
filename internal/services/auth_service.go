package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/metrics"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credentials, sessions and request authentication.
type AuthService interface {
	Register(ctx context.Context, tenantID uuid.UUID, req *RegisterRequest) (*models.PublicUser, error)
	Login(ctx context.Context, tenantID uuid.UUID, req *LoginRequest) (*models.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error

	// Authenticate verifies an access token and loads its user. When
	// requestTenant is non-nil it must match the token's tenant.
	Authenticate(ctx context.Context, accessToken string, requestTenant *uuid.UUID) (*common.Identity, error)
}

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo    repositories.UserRepository
	tenantRepo  repositories.TenantRepository
	tokenRepo   repositories.RefreshTokenRepository
	profileRepo repositories.ProfileRepository
	tokens      TokenService
	metrics     *metrics.Metrics
	log         *zap.Logger
	bcryptCost  int
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tenantRepo repositories.TenantRepository,
	tokenRepo repositories.RefreshTokenRepository,
	profileRepo repositories.ProfileRepository,
	tokens TokenService,
	m *metrics.Metrics,
	log *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		tenantRepo:  tenantRepo,
		tokenRepo:   tokenRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		metrics:     m,
		log:         log,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, tenantID uuid.UUID, req *RegisterRequest) (*models.PublicUser, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := common.ValidateMinLength(req.Name, "Name", 3); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, common.ValidationError("Password must be at least 6 characters")
	}
	if !req.Role.SelfRegistrable() {
		return nil, common.ValidationError("Role must be student or company")
	}

	_, err := s.userRepo.GetByEmail(ctx, tenantID, req.Email)
	switch {
	case err == nil:
		return nil, common.ConflictError("Email already registered")
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.ConflictError("Email already registered")
		}
		return nil, err
	}

	if user.Role == models.RoleStudent {
		profile := &models.Profile{ID: uuid.New(), UserID: user.ID, Skills: []string{}}
		if err := s.profileRepo.Upsert(ctx, profile); err != nil {
			return nil, err
		}
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("role", string(user.Role)),
	)

	public := user.Public()
	return &public, nil
}

// Login returns the same InvalidCredentials error for an unknown email and a
// wrong password, and spends a bcrypt comparison in both cases.
func (s *authService) Login(ctx context.Context, tenantID uuid.UUID, req *LoginRequest) (*models.LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.ValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
			return nil, s.fail(common.ErrInvalidCredentials)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, s.fail(common.ErrUserInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, s.fail(common.ErrInvalidCredentials)
	}

	payload := payloadFor(user)
	accessToken, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}

	session := &models.RefreshToken{
		ID:        uuid.New(),
		Token:     refreshToken,
		UserID:    user.ID,
		TenantID:  user.TenantID,
		ExpiresAt: s.now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.tokenRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &models.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", common.ValidationError("Refresh token is required")
	}

	session, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", s.fail(common.ErrInvalidRefreshToken)
		}
		return "", err
	}

	if session.Expired(s.now()) {
		s.dropSession(ctx, session.ID)
		return "", s.fail(common.ErrRefreshTokenExpired)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.dropSession(ctx, session.ID)
			return "", s.fail(common.ErrInvalidRefreshToken)
		}
		return "", err
	}
	if !user.IsActive {
		return "", s.fail(common.ErrUserInactive)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return "", err
	}
	if !tenant.IsActive {
		return "", s.fail(common.ErrTenantInactive)
	}

	if _, err := s.tokens.VerifyRefreshToken(refreshToken); err != nil {
		s.dropSession(ctx, session.ID)
		return "", s.fail(common.ErrInvalidRefreshToken)
	}

	return s.tokens.IssueAccessToken(payloadFor(user))
}

// Logout always succeeds from the caller's point of view.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		s.log.Warn("Failed to revoke refresh token on logout", zap.Error(err))
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string, requestTenant *uuid.UUID) (*common.Identity, error) {
	payload, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, s.fail(common.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.fail(common.ErrUserNotFoundOrInactive)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, s.fail(common.ErrUserNotFoundOrInactive)
	}

	if requestTenant != nil {
		if *requestTenant != payload.TenantID {
			return nil, s.fail(common.ErrTenantMismatch)
		}
	} else if err := s.checkTenantActive(ctx, payload.TenantID); err != nil {
		// Routes outside the resolver still refuse users of a deactivated tenant.
		return nil, err
	}

	return &common.Identity{
		UserID:   payload.UserID,
		TenantID: payload.TenantID,
		Email:    payload.Email,
		Role:     payload.Role,
	}, nil
}

func (s *authService) checkTenantActive(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.fail(common.ErrTenantNotFound)
		}
		return err
	}
	if !tenant.IsActive {
		return s.fail(common.ErrTenantInactive)
	}
	return nil
}

func (s *authService) fail(err *common.AppError) error {
	s.metrics.AuthFailure(string(err.Kind))
	return err
}

func (s *authService) dropSession(ctx context.Context, id uuid.UUID) {
	if err := s.tokenRepo.DeleteByID(ctx, id); err != nil {
		s.log.Warn("Failed to delete refresh token", zap.String("id", id.String()), zap.Error(err))
	}
}

func (s *authService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), s.bcryptCost)
	})
	return s.dummyHash
}

func payloadFor(user *models.User) TokenPayload {
	return TokenPayload{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
	}
}
