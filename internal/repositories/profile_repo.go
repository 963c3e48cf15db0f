package repositories

import (
	"context"
	"fmt"

	"jobboard/internal/models"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	SetResumeKey(ctx context.Context, userID uuid.UUID, key string) error
}

type profileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, user_id, course, semester, skills, bio, resume_key, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &models.Profile{}
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.UserID, &p.Course, &p.Semester, &p.Skills, &p.Bio, &p.ResumeKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// Upsert creates the profile or replaces its editable fields. One profile per user.
func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	query := `
		INSERT INTO profiles (id, user_id, course, semester, skills, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET course = EXCLUDED.course, semester = EXCLUDED.semester, skills = EXCLUDED.skills,
			bio = EXCLUDED.bio, updated_at = NOW()
		RETURNING id, resume_key, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, p.ID, p.UserID, p.Course, p.Semester, p.Skills, p.Bio).
		Scan(&p.ID, &p.ResumeKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", mapErr(err))
	}
	return nil
}

func (r *profileRepo) SetResumeKey(ctx context.Context, userID uuid.UUID, key string) error {
	query := `UPDATE profiles SET resume_key = $1, updated_at = NOW() WHERE user_id = $2`
	return affectedOrNotFound(r.db.Exec(ctx, query, key, userID))
}
