package repositories

import (
	"context"
	"fmt"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type companyRepo struct {
	db DBTX
}

func NewCompanyRepo(db DBTX) CompanyRepository {
	return &companyRepo{db: db}
}

const companySelect = `
		SELECT c.id, c.tenant_id, c.user_id, c.name, c.description, c.website, c.created_at, c.updated_at,
			u.id, u.name, u.email,
			(SELECT COUNT(*) FROM jobs j WHERE j.company_id = c.id)
		FROM companies c
		JOIN users u ON u.id = c.user_id
`

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, tenant_id, user_id, name, description, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, company.ID, company.TenantID, company.UserID, company.Name, company.Description, company.Website).
		Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", mapErr(err))
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, companySelect+` WHERE c.tenant_id = $1 AND c.id = $2`, tenantID, id))
}

func (r *companyRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, companySelect+` WHERE c.user_id = $1`, userID))
}

func (r *companyRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Company, error) {
	rows, err := r.db.Query(ctx, companySelect+` WHERE c.tenant_id = $1 ORDER BY c.created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, description = $2, website = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, company.Name, company.Description, company.Website, company.TenantID, company.ID).
		Scan(&company.UpdatedAt)
	return mapErr(err)
}

func (r *companyRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM companies WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	c := &models.Company{User: &models.UserSummary{}}
	err := row.Scan(&c.ID, &c.TenantID, &c.UserID, &c.Name, &c.Description, &c.Website, &c.CreatedAt, &c.UpdatedAt,
		&c.User.ID, &c.User.Name, &c.User.Email, &c.JobCount)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}
