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

type JobService interface {
	Create(ctx context.Context, identity *common.Identity, req *JobRequest) (*models.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.JobFilter) ([]*models.Job, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Job, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]*models.Job, error)
	Update(ctx context.Context, identity *common.Identity, id uuid.UUID, req *JobRequest) (*models.Job, error)
	Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error
}

type JobRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	IsActive     *bool     `json:"isActive"`
}

var errJobNotFound = common.NotFoundError("Job not found")

type jobService struct {
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
}

func NewJobService(jobRepo repositories.JobRepository, companyRepo repositories.CompanyRepository) JobService {
	return &jobService{jobRepo: jobRepo, companyRepo: companyRepo}
}

func (s *jobService) Create(ctx context.Context, identity *common.Identity, req *JobRequest) (*models.Job, error) {
	if req.Title == nil || req.Description == nil || req.Requirements == nil {
		return nil, common.ValidationError("Title, description and requirements are required")
	}
	if err := validateJob(req); err != nil {
		return nil, err
	}

	company, err := s.callerCompany(ctx, identity)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:           uuid.New(),
		TenantID:     identity.TenantID,
		CompanyID:    company.ID,
		Title:        strings.TrimSpace(*req.Title),
		Description:  strings.TrimSpace(*req.Description),
		Requirements: *req.Requirements,
		IsActive:     true,
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	job.Company = &models.CompanySummary{ID: company.ID, Name: company.Name, Website: company.Website}
	return job, nil
}

func (s *jobService) List(ctx context.Context, tenantID uuid.UUID, filter models.JobFilter) ([]*models.Job, error) {
	return s.jobRepo.List(ctx, tenantID, filter)
}

func (s *jobService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, tenantID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errJobNotFound
	}
	return job, err
}

func (s *jobService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]*models.Job, error) {
	return s.jobRepo.ListByCompany(ctx, tenantID, companyID)
}

// Update reports NotFound for jobs that belong to another company.
func (s *jobService) Update(ctx context.Context, identity *common.Identity, id uuid.UUID, req *JobRequest) (*models.Job, error) {
	if err := validateJob(req); err != nil {
		return nil, err
	}
	job, err := s.ownedJob(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	job, err := s.ownedJob(ctx, identity, id)
	if err != nil {
		return err
	}
	return s.jobRepo.Delete(ctx, identity.TenantID, job.ID)
}

func (s *jobService) callerCompany(ctx context.Context, identity *common.Identity) (*models.Company, error) {
	company, err := s.companyRepo.GetByUserID(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errNoCompany
	}
	return company, err
}

func (s *jobService) ownedJob(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Job, error) {
	company, err := s.callerCompany(ctx, identity)
	if err != nil {
		return nil, err
	}
	job, err := s.GetByID(ctx, identity.TenantID, id)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != company.ID {
		return nil, errJobNotFound
	}
	return job, nil
}

func validateJob(req *JobRequest) error {
	if req.Title != nil {
		if err := common.ValidateMinLength(*req.Title, "Title", 5); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := common.ValidateMinLength(*req.Description, "Description", 20); err != nil {
			return err
		}
	}
	if req.Requirements != nil && len(*req.Requirements) == 0 {
		return common.ValidationError("At least one requirement is needed")
	}
	return nil
}
