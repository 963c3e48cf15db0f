package services

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
)

type TenantService interface {
	// Resolve maps a request host to an active tenant. It is never cached.
	Resolve(ctx context.Context, host string) (*models.Tenant, error)
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TenantWithCounts, error)
	List(ctx context.Context) ([]*models.TenantWithCounts, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

type CreateTenantRequest struct {
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Domain *string `json:"domain"`
}

type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	Domain   *string `json:"domain"`
	IsActive *bool   `json:"isActive"`
}

// ExtractSubdomain returns the tenant slug encoded in a host header.
// "acme.example.com:8080" and "acme.localhost" both yield "acme".
func ExtractSubdomain(host string) (string, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return "", false
	}

	parts := strings.Split(host, ".")
	switch {
	case len(parts) >= 3:
		return parts[0], parts[0] != ""
	case len(parts) == 2 && parts[1] == "localhost":
		return parts[0], parts[0] != ""
	default:
		return "", false
	}
}

func (s *tenantService) Resolve(ctx context.Context, host string) (*models.Tenant, error) {
	slug, ok := ExtractSubdomain(host)
	if !ok {
		return nil, common.ErrTenantResolution
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTenantNotFound
		}
		return nil, err
	}
	if !tenant.IsActive {
		return nil, common.ErrTenantInactive
	}
	return tenant, nil
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := common.ValidateMinLength(req.Name, "Name", 3); err != nil {
		return nil, err
	}
	if err := common.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:       uuid.New(),
		Name:     req.Name,
		Slug:     req.Slug,
		Domain:   blankToNil(req.Domain),
		IsActive: true,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.ConflictError("Slug already exists")
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.TenantWithCounts, error) {
	tenant, err := s.tenantRepo.GetWithCounts(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.ErrTenantNotFound
	}
	return tenant, err
}

func (s *tenantService) List(ctx context.Context) ([]*models.TenantWithCounts, error) {
	return s.tenantRepo.ListWithCounts(ctx)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error) {
	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.ErrTenantNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := common.ValidateMinLength(name, "Name", 3); err != nil {
			return nil, err
		}
		existing.Name = name
	}
	if req.Domain != nil {
		existing.Domain = blankToNil(req.Domain)
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tenantRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return common.ErrTenantNotFound
	}
	return err
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
