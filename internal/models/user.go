package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleGlobalAdmin Role = "globalAdmin"
	RoleTenantAdmin Role = "tenantAdmin"
	RoleStudent     Role = "student"
	RoleCompany     Role = "company"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGlobalAdmin, RoleTenantAdmin, RoleStudent, RoleCompany:
		return true
	}
	return false
}

// SelfRegistrable reports whether a user may pick this role at registration.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleCompany
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenantId" db:"tenant_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the projection returned by login.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserSummary is embedded in company and application payloads.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserProfile is the /me view of a user.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Profile   *Profile  `json:"profile"`
	Company   *Company  `json:"company"`
}
