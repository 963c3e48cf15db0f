package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxResumeSize     = 5 << 20
	ResumeContentType = "application/pdf"
	resumeURLExpiry   = 15 * time.Minute
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.UserProfile, error)
	UploadResume(ctx context.Context, identity *common.Identity, reader io.Reader, size int64, contentType string) error
	ResumeURL(ctx context.Context, identity *common.Identity) (string, error)

	List(ctx context.Context, tenantID uuid.UUID, role *models.Role) ([]*models.User, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, actor *common.Identity, id uuid.UUID, req *UpdateUserRequest) (*models.User, error)
}

type UpdateProfileRequest struct {
	Name     *string   `json:"name"`
	Course   *string   `json:"course"`
	Semester *int      `json:"semester"`
	Skills   *[]string `json:"skills"`
	Bio      *string   `json:"bio"`
}

type UpdateUserRequest struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Role     *models.Role `json:"role"`
	IsActive *bool        `json:"isActive"`
}

type userService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	companyRepo repositories.CompanyRepository
	storage     StorageService
	log         *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	companyRepo repositories.CompanyRepository,
	storage StorageService,
	log *zap.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		storage:     storage,
		log:         log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NotFoundError("User not found")
		}
		return nil, err
	}

	view := &models.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		view.Profile = profile
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	company, err := s.companyRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		view.Company = company
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	return view, nil
}

// UpdateProfile creates the profile when the student has none yet.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.UserProfile, error) {
	if req.Semester != nil && (*req.Semester < 1 || *req.Semester > 12) {
		return nil, common.ValidationError("Semester must be between 1 and 12")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := common.ValidateMinLength(name, "Name", 3); err != nil {
			return nil, err
		}
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, common.NotFoundError("User not found")
			}
			return nil, err
		}
		user.Name = name
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		profile = &models.Profile{ID: uuid.New(), UserID: userID, Skills: []string{}}
	}

	if req.Course != nil {
		profile.Course = req.Course
	}
	if req.Semester != nil {
		profile.Semester = req.Semester
	}
	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func resumeObjectName(identity *common.Identity) string {
	return fmt.Sprintf("%s/%s/resume.pdf", identity.TenantID, identity.UserID)
}

func (s *userService) UploadResume(ctx context.Context, identity *common.Identity, reader io.Reader, size int64, contentType string) error {
	if contentType != ResumeContentType {
		return common.ValidationError("Resume must be a PDF file")
	}
	if size <= 0 || size > MaxResumeSize {
		return common.ValidationError("Resume must be at most 5MB")
	}

	// Profiles are created at registration, but older accounts may lack one.
	hadResume := false
	profile, err := s.profileRepo.GetByUserID(ctx, identity.UserID)
	switch {
	case err == nil:
		hadResume = profile.HasResume()
	case errors.Is(err, repositories.ErrNotFound):
		if err := s.profileRepo.Upsert(ctx, &models.Profile{ID: uuid.New(), UserID: identity.UserID, Skills: []string{}}); err != nil {
			return err
		}
	default:
		return err
	}

	key := resumeObjectName(identity)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	if err := s.profileRepo.SetResumeKey(ctx, identity.UserID, key); err != nil {
		// A replaced resume is still referenced by the profile; only a first upload is orphaned.
		if !hadResume {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				s.log.Warn("Failed to remove orphaned resume", zap.String("key", key), zap.Error(delErr))
			}
		}
		return err
	}

	s.log.Info("Resume uploaded", zap.String("user_id", identity.UserID.String()), zap.Int64("size", size))
	return nil
}

func (s *userService) ResumeURL(ctx context.Context, identity *common.Identity) (string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, identity.UserID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", err
	}
	if profile == nil || !profile.HasResume() {
		return "", common.NotFoundError("Resume not found")
	}
	return s.storage.PresignedURL(ctx, *profile.ResumeKey, resumeURLExpiry)
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, role *models.Role) ([]*models.User, error) {
	if role != nil && !role.Valid() {
		return nil, common.ValidationError("Invalid role")
	}
	return s.userRepo.List(ctx, tenantID, role)
}

// GetByID hides users of other tenants behind NotFound.
func (s *userService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NotFoundError("User not found")
		}
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, common.NotFoundError("User not found")
	}
	return user, nil
}

// Update edits a user of the actor's tenant. Only global admins may grant the
// global admin role.
func (s *userService) Update(ctx context.Context, actor *common.Identity, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := common.ValidateMinLength(name, "Name", 3); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := common.ValidateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, common.ValidationError("Invalid role")
		}
		if *req.Role == models.RoleGlobalAdmin && actor.Role != models.RoleGlobalAdmin {
			return nil, common.ErrInsufficientPermissions
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.ConflictError("Email already registered")
		}
		return nil, err
	}
	return user, nil
}
