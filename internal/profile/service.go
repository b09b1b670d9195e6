// internal/profile/service.go
package profile

import (
	"errors"

	"quiz-portal/internal/models"
)

var ErrNameRequired = errors.New("full name is required")

type Store interface {
	GetByUserID(userID uint) (*models.Profile, error)
	Upsert(profile *models.Profile) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(userID uint) (*models.Profile, error) {
	return s.store.GetByUserID(userID)
}

// Complete fills in the user's profile. A profile with a name is what
// lets the leaderboard show something better than an email address.
func (s *Service) Complete(userID uint, fullName, institution string) error {
	if fullName == "" {
		return ErrNameRequired
	}
	return s.store.Upsert(&models.Profile{
		UserID:      userID,
		FullName:    fullName,
		Institution: institution,
	})
}
