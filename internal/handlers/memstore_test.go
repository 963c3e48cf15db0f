package handlers

import (
	"context"
	"sync"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repositories backing the end-to-end tests.

type memTenants struct {
	repositories.TenantRepository
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Tenant
}

func (m *memTenants) add(slug string, active bool) *models.Tenant {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &models.Tenant{ID: uuid.New(), Name: slug, Slug: slug, IsActive: active}
	m.rows[t.ID] = t
	return t
}

func (m *memTenants) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.rows[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memTenants) GetBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.User
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.TenantID == user.TenantID && u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.rows[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, tenantID uuid.UUID, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.TenantID == tenantID && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) List(_ context.Context, tenantID uuid.UUID, role *models.Role) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, u := range m.rows {
		if u.TenantID == tenantID && (role == nil || u.Role == *role) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	m.rows[user.ID] = &cp
	return nil
}

type memTokens struct {
	mu   sync.Mutex
	rows map[string]*models.RefreshToken
}

func (m *memTokens) Create(_ context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *token
	m.rows[token.Token] = &cp
	return nil
}

func (m *memTokens) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.rows[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memTokens) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, t := range m.rows {
		if t.ID == id {
			delete(m.rows, k)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memTokens) DeleteByToken(_ context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[token]; !ok {
		return 0, nil
	}
	delete(m.rows, token)
	return 1, nil
}

func (m *memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.rows {
		if !t.ExpiresAt.After(now) {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

func (m *memTokens) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memProfiles struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Profile
}

func (m *memProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memProfiles) Upsert(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	cp := *profile
	m.rows[profile.UserID] = &cp
	return nil
}

func (m *memProfiles) SetResumeKey(_ context.Context, userID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.ResumeKey = &key
	return nil
}

// memCompanies only answers lookups; no company exists in these scenarios.
type memCompanies struct {
	repositories.CompanyRepository
}

func (memCompanies) GetByUserID(context.Context, uuid.UUID) (*models.Company, error) {
	return nil, repositories.ErrNotFound
}
