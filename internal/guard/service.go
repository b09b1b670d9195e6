// internal/guard/service.go
package guard

import (
	"errors"
	"log"
	"time"

	"quiz-portal/internal/models"
)

const (
	// MaxAttempts failed logins in a row block the account.
	MaxAttempts = 5
	// BlockDuration is how long a blocked account stays locked. Every
	// further failure while blocked pushes the window forward again.
	BlockDuration = 24 * time.Hour
)

// ErrBlocked is returned when an account is locked out. Handlers map it
// to a response distinct from invalid credentials so the UI can route
// the user to password reset instead of retrying.
var ErrBlocked = errors.New("account blocked due to too many failed login attempts")

// AttemptStore persists per-email failure counters. Both Record methods
// must be atomic upserts keyed on the unique email column: the increment
// and the threshold check happen store-side in one statement, never as a
// read followed by a write from here.
type AttemptStore interface {
	Get(email string) (*models.LoginAttempt, error)
	RecordSuccess(email string, at time.Time) (*models.LoginAttempt, error)
	RecordFailure(email string, at time.Time) (*models.LoginAttempt, error)
}

type Service struct {
	store AttemptStore
}

func NewService(store AttemptStore) *Service {
	return &Service{store: store}
}

// IsBlocked reports whether login attempts for email should be refused.
// No record means not blocked. Read errors are surfaced to the caller;
// they must not be treated as a silent pass.
func (s *Service) IsBlocked(email string) (bool, error) {
	attempt, err := s.store.Get(email)
	if err != nil {
		return false, err
	}
	if attempt == nil || attempt.BlockedUntil == nil {
		return false, nil
	}
	return attempt.BlockedUntil.After(time.Now()), nil
}

// RecordAttempt updates the failure counter after a credential check.
// Success resets the counter and clears any block. Failure increments it
// and sets blocked_until once the count reaches MaxAttempts. The updated
// row is returned so callers can surface remaining attempts.
func (s *Service) RecordAttempt(email string, wasSuccessful bool) (*models.LoginAttempt, error) {
	now := time.Now()
	if wasSuccessful {
		attempt, err := s.store.RecordSuccess(email, now)
		if err != nil {
			log.Printf("Error recording successful attempt for %s: %v", email, err)
			return nil, err
		}
		return attempt, nil
	}

	attempt, err := s.store.RecordFailure(email, now)
	if err != nil {
		log.Printf("Error recording failed attempt for %s: %v", email, err)
		return nil, err
	}
	return attempt, nil
}

// RemainingAttempts is how many more failures are allowed before the
// block kicks in. Never negative.
func RemainingAttempts(attempt *models.LoginAttempt) int {
	if attempt == nil {
		return MaxAttempts
	}
	remaining := MaxAttempts - attempt.FailedAttempts
	if remaining < 0 {
		return 0
	}
	return remaining
}
