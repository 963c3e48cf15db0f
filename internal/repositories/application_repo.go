package repositories

import (
	"context"
	"fmt"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type applicationRepo struct {
	db DBTX
}

func NewApplicationRepo(db DBTX) ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
		SELECT a.id, a.job_id, a.user_id, a.status, a.created_at, a.updated_at,
			j.id, j.title, j.tenant_id, j.company_id, c.name,
			u.id, u.name, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		JOIN users u ON u.id = a.user_id
`

// Create fails with ErrDuplicate when the user already applied to the job.
func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (id, job_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, app.ID, app.JobID, app.UserID, app.Status).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", mapErr(err))
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.user_id = $1 ORDER BY a.created_at DESC`, userID)
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC`, jobID)
}

func (r *applicationRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE j.company_id = $1 ORDER BY a.created_at DESC`, companyID)
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...any) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	query := `UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`
	return affectedOrNotFound(r.db.Exec(ctx, query, status, id))
}

func (r *applicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id))
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{Job: &models.JobSummary{}, User: &models.UserSummary{}}
	err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.Job.ID, &a.Job.Title, &a.Job.TenantID, &a.Job.CompanyID, &a.Job.Company,
		&a.User.ID, &a.User.Name, &a.User.Email)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}
