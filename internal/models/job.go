package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	TenantID         uuid.UUID       `json:"tenantId" db:"tenant_id"`
	CompanyID        uuid.UUID       `json:"companyId" db:"company_id"`
	Title            string          `json:"title" db:"title"`
	Description      string          `json:"description" db:"description"`
	Requirements     []string        `json:"requirements" db:"requirements"`
	IsActive         bool            `json:"isActive" db:"is_active"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
	Company          *CompanySummary `json:"company,omitempty" db:"-"`
	ApplicationCount int             `json:"applicationCount" db:"-"`
}

// CompanySummary is embedded in job payloads.
type CompanySummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Website *string   `json:"website"`
}

// JobFilter narrows job listings.
type JobFilter struct {
	IsActive *bool
}
