package repositories

import (
	"context"
	"fmt"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetWithCounts(ctx context.Context, id uuid.UUID) (*models.TenantWithCounts, error)
	ListWithCounts(ctx context.Context) ([]*models.TenantWithCounts, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `id, name, slug, domain, is_active, created_at, updated_at`

const tenantCountColumns = `t.id, t.name, t.slug, t.domain, t.is_active, t.created_at, t.updated_at,
		(SELECT COUNT(*) FROM users u WHERE u.tenant_id = t.id),
		(SELECT COUNT(*) FROM companies c WHERE c.tenant_id = t.id),
		(SELECT COUNT(*) FROM jobs j WHERE j.tenant_id = t.id)`

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, domain, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, tenant.ID, tenant.Name, tenant.Slug, tenant.Domain, tenant.IsActive).
		Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", mapErr(err))
	}
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.db.QueryRow(ctx, query, id))
}

// GetBySlug is the lookup behind host-based tenant resolution.
func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return scanTenant(r.db.QueryRow(ctx, query, slug))
}

func (r *tenantRepo) GetWithCounts(ctx context.Context, id uuid.UUID) (*models.TenantWithCounts, error) {
	query := `SELECT ` + tenantCountColumns + ` FROM tenants t WHERE t.id = $1`
	return scanTenantWithCounts(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) ListWithCounts(ctx context.Context) ([]*models.TenantWithCounts, error) {
	query := `SELECT ` + tenantCountColumns + ` FROM tenants t ORDER BY t.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*models.TenantWithCounts{}
	for rows.Next() {
		t, err := scanTenantWithCounts(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, domain = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, tenant.Name, tenant.Domain, tenant.IsActive, tenant.ID).Scan(&tenant.UpdatedAt)
	return mapErr(err)
}

// Delete removes the tenant; foreign keys cascade to everything it owns.
func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id))
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Domain, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func scanTenantWithCounts(row pgx.Row) (*models.TenantWithCounts, error) {
	t := &models.TenantWithCounts{}
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Domain, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		&t.Count.Users, &t.Count.Companies, &t.Count.Jobs)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}
