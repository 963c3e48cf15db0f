package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted refresh-token session. The token column is unique.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Token     string    `json:"-" db:"token"` // Never return in JSON
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	TenantID  uuid.UUID `json:"tenantId" db:"tenant_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         PublicUser `json:"user"`
}
