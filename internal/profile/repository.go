// internal/profile/repository.go
package profile

import (
	"errors"

	"quiz-portal/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or updates the single profile row for a user, keyed on
// the unique user_id index.
func (r *Repository) Upsert(profile *models.Profile) error {
	return r.db.Exec(`
		INSERT INTO profiles (user_id, full_name, institution, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			institution = EXCLUDED.institution,
			updated_at = NOW()
	`, profile.UserID, profile.FullName, profile.Institution).Error
}
