package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	TenantID    uuid.UUID    `json:"tenantId" db:"tenant_id"`
	UserID      uuid.UUID    `json:"userId" db:"user_id"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description" db:"description"`
	Website     *string      `json:"website" db:"website"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
	User        *UserSummary `json:"user,omitempty" db:"-"`
	JobCount    int          `json:"jobCount" db:"-"`
}
