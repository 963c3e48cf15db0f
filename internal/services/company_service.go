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

type CompanyService interface {
	Create(ctx context.Context, identity *common.Identity, req *CompanyRequest) (*models.Company, error)
	GetMine(ctx context.Context, identity *common.Identity) (*models.Company, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Company, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error)
	UpdateMine(ctx context.Context, identity *common.Identity, req *CompanyRequest) (*models.Company, error)
	DeleteMine(ctx context.Context, identity *common.Identity) error
}

// CompanyRequest is used for create (name required) and update (all optional).
type CompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

var errNoCompany = common.NotFoundError("Company profile not found")

type companyService struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(ctx context.Context, identity *common.Identity, req *CompanyRequest) (*models.Company, error) {
	if req.Name == nil {
		return nil, common.ValidationError("Name is required")
	}
	if err := validateCompany(req); err != nil {
		return nil, err
	}

	_, err := s.companyRepo.GetByUserID(ctx, identity.UserID)
	switch {
	case err == nil:
		return nil, common.ConflictError("Company profile already exists")
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	company := &models.Company{
		ID:          uuid.New(),
		TenantID:    identity.TenantID,
		UserID:      identity.UserID,
		Name:        strings.TrimSpace(*req.Name),
		Description: req.Description,
		Website:     blankToNil(req.Website),
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.ConflictError("Company profile already exists")
		}
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, identity.TenantID, company.ID)
}

func (s *companyService) GetMine(ctx context.Context, identity *common.Identity) (*models.Company, error) {
	company, err := s.companyRepo.GetByUserID(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errNoCompany
	}
	return company, err
}

func (s *companyService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Company, error) {
	return s.companyRepo.List(ctx, tenantID)
}

func (s *companyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, tenantID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NotFoundError("Company not found")
	}
	return company, err
}

func (s *companyService) UpdateMine(ctx context.Context, identity *common.Identity, req *CompanyRequest) (*models.Company, error) {
	if err := validateCompany(req); err != nil {
		return nil, err
	}
	company, err := s.GetMine(ctx, identity)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Website != nil {
		company.Website = blankToNil(req.Website)
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) DeleteMine(ctx context.Context, identity *common.Identity) error {
	company, err := s.GetMine(ctx, identity)
	if err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, company.TenantID, company.ID)
}

func validateCompany(req *CompanyRequest) error {
	if req.Name != nil {
		if err := common.ValidateMinLength(*req.Name, "Name", 3); err != nil {
			return err
		}
	}
	if req.Website != nil && strings.TrimSpace(*req.Website) != "" {
		if err := common.ValidateURL(strings.TrimSpace(*req.Website)); err != nil {
			return err
		}
	}
	return nil
}
