package profile

import (
	"errors"
	"testing"

	"quiz-portal/internal/models"
)

type memProfiles struct {
	rows map[uint]*models.Profile
}

func (m *memProfiles) GetByUserID(userID uint) (*models.Profile, error) {
	return m.rows[userID], nil
}

func (m *memProfiles) Upsert(profile *models.Profile) error {
	if existing, ok := m.rows[profile.UserID]; ok {
		existing.FullName = profile.FullName
		existing.Institution = profile.Institution
		return nil
	}
	m.rows[profile.UserID] = profile
	return nil
}

func TestCompleteRequiresName(t *testing.T) {
	service := NewService(&memProfiles{rows: map[uint]*models.Profile{}})

	if err := service.Complete(1, "", "MIT"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCompleteUpsertsSingleRow(t *testing.T) {
	store := &memProfiles{rows: map[uint]*models.Profile{}}
	service := NewService(store)

	if err := service.Complete(1, "Alice", "MIT"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := service.Complete(1, "Alice Smith", "CMU"); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(store.rows) != 1 {
		t.Fatalf("expected one profile row per user, got %d", len(store.rows))
	}
	got, _ := service.Get(1)
	if got.FullName != "Alice Smith" || got.Institution != "CMU" {
		t.Fatalf("update not applied: %+v", got)
	}
}
