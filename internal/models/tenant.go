package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Domain    *string   `json:"domain" db:"domain"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TenantCounts holds the number of rows a tenant owns.
type TenantCounts struct {
	Users     int `json:"users"`
	Companies int `json:"companies"`
	Jobs      int `json:"jobs"`
}

type TenantWithCounts struct {
	Tenant
	Count TenantCounts `json:"_count"`
}
