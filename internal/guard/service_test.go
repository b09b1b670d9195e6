package guard

import (
	"errors"
	"testing"
	"time"

	"quiz-portal/internal/models"
)

// memoryStore mirrors the repository's upsert semantics in memory so the
// service contract can be exercised without postgres.
type memoryStore struct {
	attempts map[string]*models.LoginAttempt
	err      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{attempts: make(map[string]*models.LoginAttempt)}
}

func (m *memoryStore) Get(email string) (*models.LoginAttempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	attempt, ok := m.attempts[email]
	if !ok {
		return nil, nil
	}
	copied := *attempt
	return &copied, nil
}

func (m *memoryStore) RecordSuccess(email string, at time.Time) (*models.LoginAttempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	attempt, ok := m.attempts[email]
	if !ok {
		attempt = &models.LoginAttempt{Email: email}
		m.attempts[email] = attempt
	}
	attempt.FailedAttempts = 0
	attempt.LastAttemptAt = at
	attempt.BlockedUntil = nil
	copied := *attempt
	return &copied, nil
}

func (m *memoryStore) RecordFailure(email string, at time.Time) (*models.LoginAttempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	attempt, ok := m.attempts[email]
	if !ok {
		attempt = &models.LoginAttempt{Email: email}
		m.attempts[email] = attempt
	}
	attempt.FailedAttempts++
	attempt.LastAttemptAt = at
	if attempt.FailedAttempts >= MaxAttempts {
		until := at.Add(BlockDuration)
		attempt.BlockedUntil = &until
	} else {
		attempt.BlockedUntil = nil
	}
	copied := *attempt
	return &copied, nil
}

func TestFailuresIncrementAndBlockAtThreshold(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store)

	for i := 1; i <= MaxAttempts; i++ {
		attempt, err := service.RecordAttempt("a@b.com", false)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if attempt.FailedAttempts != i {
			t.Fatalf("attempt %d: got failed_attempts=%d, want %d", i, attempt.FailedAttempts, i)
		}
		if i < MaxAttempts && attempt.BlockedUntil != nil {
			t.Fatalf("attempt %d: blocked before threshold", i)
		}
		if i == MaxAttempts && attempt.BlockedUntil == nil {
			t.Fatalf("attempt %d: expected block at threshold", i)
		}
	}

	blocked, err := service.IsBlocked("a@b.com")
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if !blocked {
		t.Fatalf("expected account to be blocked after %d failures", MaxAttempts)
	}
}

func TestFurtherFailuresExtendBlock(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store)

	for i := 0; i < MaxAttempts; i++ {
		if _, err := service.RecordAttempt("a@b.com", false); err != nil {
			t.Fatalf("seed failure: %v", err)
		}
	}
	first := *store.attempts["a@b.com"].BlockedUntil

	time.Sleep(5 * time.Millisecond)
	attempt, err := service.RecordAttempt("a@b.com", false)
	if err != nil {
		t.Fatalf("sixth failure: %v", err)
	}
	if attempt.FailedAttempts != MaxAttempts+1 {
		t.Fatalf("got failed_attempts=%d, want %d", attempt.FailedAttempts, MaxAttempts+1)
	}
	if attempt.BlockedUntil == nil || !attempt.BlockedUntil.After(first) {
		t.Fatalf("expected block window to move forward, first=%v now=%v", first, attempt.BlockedUntil)
	}
}

func TestSuccessResetsCounterAndBlock(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store)

	for i := 0; i < 4; i++ {
		if _, err := service.RecordAttempt("a@b.com", false); err != nil {
			t.Fatalf("failure: %v", err)
		}
	}
	attempt, err := service.RecordAttempt("a@b.com", true)
	if err != nil {
		t.Fatalf("success: %v", err)
	}
	if attempt.FailedAttempts != 0 || attempt.BlockedUntil != nil {
		t.Fatalf("expected reset, got failed=%d blocked=%v", attempt.FailedAttempts, attempt.BlockedUntil)
	}

	blocked, err := service.IsBlocked("a@b.com")
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if blocked {
		t.Fatalf("expected not blocked after success")
	}
}

func TestSuccessResetsEvenWhenBlocked(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store)

	for i := 0; i < MaxAttempts; i++ {
		service.RecordAttempt("a@b.com", false)
	}
	attempt, err := service.RecordAttempt("a@b.com", true)
	if err != nil {
		t.Fatalf("success: %v", err)
	}
	if attempt.FailedAttempts != 0 || attempt.BlockedUntil != nil {
		t.Fatalf("success must reset regardless of prior state, got %+v", attempt)
	}
}

func TestBlockExpires(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store)

	past := time.Now().Add(-time.Minute)
	store.attempts["a@b.com"] = &models.LoginAttempt{
		Email:          "a@b.com",
		FailedAttempts: MaxAttempts,
		BlockedUntil:   &past,
	}

	blocked, err := service.IsBlocked("a@b.com")
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if blocked {
		t.Fatalf("expected expired block to no longer apply")
	}
}

func TestUnknownEmailNotBlocked(t *testing.T) {
	service := NewService(newMemoryStore())

	blocked, err := service.IsBlocked("nobody@example.com")
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if blocked {
		t.Fatalf("missing record must mean not blocked")
	}
}

func TestStoreErrorsSurfaced(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	service := NewService(store)

	if _, err := service.IsBlocked("a@b.com"); err == nil {
		t.Fatalf("expected read error to surface")
	}
	if _, err := service.RecordAttempt("a@b.com", false); err == nil {
		t.Fatalf("expected write error to surface")
	}
}

func TestRemainingAttempts(t *testing.T) {
	if got := RemainingAttempts(nil); got != MaxAttempts {
		t.Fatalf("nil attempt: got %d, want %d", got, MaxAttempts)
	}
	if got := RemainingAttempts(&models.LoginAttempt{FailedAttempts: 3}); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := RemainingAttempts(&models.LoginAttempt{FailedAttempts: 7}); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
