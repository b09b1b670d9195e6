// internal/guard/repository.go
package guard

import (
	"errors"
	"time"

	"quiz-portal/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(email string) (*models.LoginAttempt, error) {
	var attempt models.LoginAttempt
	err := r.db.Where("email = ?", email).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *Repository) RecordSuccess(email string, at time.Time) (*models.LoginAttempt, error) {
	var attempt models.LoginAttempt
	err := r.db.Raw(`
		INSERT INTO login_attempts (email, failed_attempts, last_attempt_at, blocked_until, created_at, updated_at)
		VALUES (?, 0, ?, NULL, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			failed_attempts = 0,
			last_attempt_at = EXCLUDED.last_attempt_at,
			blocked_until = NULL,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`, email, at, at, at).Scan(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// RecordFailure increments the counter and applies the block threshold in
// a single upsert. Two concurrent failures for the same email serialize
// on the unique email index inside the database, so the count can never
// under-increment and the block can never be skipped by a race.
func (r *Repository) RecordFailure(email string, at time.Time) (*models.LoginAttempt, error) {
	var attempt models.LoginAttempt
	err := r.db.Raw(`
		INSERT INTO login_attempts (email, failed_attempts, last_attempt_at, blocked_until, created_at, updated_at)
		VALUES (?, 1, ?, NULL, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			failed_attempts = login_attempts.failed_attempts + 1,
			last_attempt_at = EXCLUDED.last_attempt_at,
			blocked_until = CASE
				WHEN login_attempts.failed_attempts + 1 >= ? THEN ?
				ELSE NULL
			END,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`, email, at, at, at, MaxAttempts, at.Add(BlockDuration)).Scan(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
