package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

type Application struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	JobID     uuid.UUID         `json:"jobId" db:"job_id"`
	UserID    uuid.UUID         `json:"userId" db:"user_id"`
	Status    ApplicationStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
	Job       *JobSummary       `json:"job,omitempty" db:"-"`
	User      *UserSummary      `json:"user,omitempty" db:"-"`
}

// JobSummary is embedded in application payloads.
type JobSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	TenantID  uuid.UUID `json:"tenantId"`
	CompanyID uuid.UUID `json:"companyId"`
	Company   string    `json:"companyName"`
}
