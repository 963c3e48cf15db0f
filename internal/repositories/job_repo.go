package repositories

import (
	"context"
	"fmt"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, filter models.JobFilter) ([]*models.Job, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type jobRepo struct {
	db DBTX
}

func NewJobRepo(db DBTX) JobRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
		SELECT j.id, j.tenant_id, j.company_id, j.title, j.description, j.requirements, j.is_active,
			j.created_at, j.updated_at,
			c.id, c.name, c.website,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
`

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	query := `
		INSERT INTO jobs (id, tenant_id, company_id, title, description, requirements, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, job.ID, job.TenantID, job.CompanyID, job.Title, job.Description, job.Requirements, job.IsActive).
		Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", mapErr(err))
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Job, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.tenant_id = $1 AND j.id = $2`, tenantID, id))
}

func (r *jobRepo) List(ctx context.Context, tenantID uuid.UUID, filter models.JobFilter) ([]*models.Job, error) {
	query := jobSelect + ` WHERE j.tenant_id = $1`
	args := []any{tenantID}
	if filter.IsActive != nil {
		query += ` AND j.is_active = $2`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY j.created_at DESC`
	return r.list(ctx, query, args...)
}

func (r *jobRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]*models.Job, error) {
	query := jobSelect + ` WHERE j.tenant_id = $1 AND j.company_id = $2 ORDER BY j.created_at DESC`
	return r.list(ctx, query, tenantID, companyID)
}

func (r *jobRepo) list(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $1, description = $2, requirements = $3, is_active = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, job.Title, job.Description, job.Requirements, job.IsActive, job.TenantID, job.ID).
		Scan(&job.UpdatedAt)
	return mapErr(err)
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM jobs WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func scanJob(row pgx.Row) (*models.Job, error) {
	j := &models.Job{Company: &models.CompanySummary{}}
	err := row.Scan(&j.ID, &j.TenantID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.IsActive,
		&j.CreatedAt, &j.UpdatedAt,
		&j.Company.ID, &j.Company.Name, &j.Company.Website, &j.ApplicationCount)
	if err != nil {
		return nil, mapErr(err)
	}
	return j, nil
}
