package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Course    *string   `json:"course" db:"course"`
	Semester  *int      `json:"semester" db:"semester"`
	Skills    []string  `json:"skills" db:"skills"`
	Bio       *string   `json:"bio" db:"bio"`
	ResumeKey *string   `json:"-" db:"resume_key"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasResume is serialized instead of the object key.
func (p *Profile) HasResume() bool {
	return p.ResumeKey != nil && *p.ResumeKey != ""
}
