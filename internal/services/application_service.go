package services

import (
	"context"
	"errors"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
)

type ApplicationService interface {
	Apply(ctx context.Context, identity *common.Identity, jobID uuid.UUID) (*models.Application, error)
	ListMine(ctx context.Context, identity *common.Identity) ([]*models.Application, error)
	ListForJob(ctx context.Context, identity *common.Identity, jobID uuid.UUID) ([]*models.Application, error)
	ListForCompany(ctx context.Context, identity *common.Identity) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, identity *common.Identity, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error)
	Withdraw(ctx context.Context, identity *common.Identity, id uuid.UUID) error
}

var errApplicationNotFound = common.NotFoundError("Application not found")

type applicationService struct {
	appRepo     repositories.ApplicationRepository
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
) ApplicationService {
	return &applicationService{appRepo: appRepo, jobRepo: jobRepo, companyRepo: companyRepo}
}

func (s *applicationService) Apply(ctx context.Context, identity *common.Identity, jobID uuid.UUID) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, identity.TenantID, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}
	if !job.IsActive {
		return nil, common.ValidationError("Job is not accepting applications")
	}

	app := &models.Application{
		ID:     uuid.New(),
		JobID:  job.ID,
		UserID: identity.UserID,
		Status: models.ApplicationPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.ConflictError("Already applied to this job")
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, identity *common.Identity) ([]*models.Application, error) {
	return s.appRepo.ListByUser(ctx, identity.UserID)
}

func (s *applicationService) ListForJob(ctx context.Context, identity *common.Identity, jobID uuid.UUID) ([]*models.Application, error) {
	company, err := s.callerCompany(ctx, identity)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, identity.TenantID, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errJobNotFound
		}
		return nil, err
	}
	if job.CompanyID != company.ID {
		return nil, common.ForbiddenError("Not authorized to view applications for this job")
	}
	return s.appRepo.ListByJob(ctx, job.ID)
}

func (s *applicationService) ListForCompany(ctx context.Context, identity *common.Identity) ([]*models.Application, error) {
	company, err := s.callerCompany(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.appRepo.ListByCompany(ctx, company.ID)
}

// UpdateStatus is reserved to the company owning the job.
func (s *applicationService) UpdateStatus(ctx context.Context, identity *common.Identity, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, common.ValidationError("Status must be pending, accepted or rejected")
	}
	app, err := s.tenantApplication(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	company, err := s.callerCompany(ctx, identity)
	if err != nil {
		return nil, err
	}
	if app.Job.CompanyID != company.ID {
		return nil, common.ForbiddenError("Not authorized to update this application")
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, err
	}
	app.Status = status
	return app, nil
}

// Withdraw deletes an application; only its student may do so.
func (s *applicationService) Withdraw(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	app, err := s.tenantApplication(ctx, identity, id)
	if err != nil {
		return err
	}
	if app.UserID != identity.UserID {
		return common.ForbiddenError("Not authorized to delete this application")
	}
	return s.appRepo.Delete(ctx, app.ID)
}

func (s *applicationService) tenantApplication(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errApplicationNotFound
		}
		return nil, err
	}
	if app.Job == nil || app.Job.TenantID != identity.TenantID {
		return nil, errApplicationNotFound
	}
	return app, nil
}

func (s *applicationService) callerCompany(ctx context.Context, identity *common.Identity) (*models.Company, error) {
	company, err := s.companyRepo.GetByUserID(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errNoCompany
	}
	return company, err
}
