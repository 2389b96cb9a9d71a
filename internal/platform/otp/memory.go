package otp

import (
	"context"
	"sync"
	"time"

	"rentease_backend/internal/feature/auth/usecase"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in process memory. Codes are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ usecase.OTPStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose codes live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue replaces any live code for email with a fresh one.
func (s *MemoryStore) Issue(_ context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expiresAt: s.now().Add(s.ttl)}
	return code, nil
}

// Verify reports whether code matches the live code and removes it on a match.
// Expired entries are evicted.
func (s *MemoryStore) Verify(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return false, usecase.ErrOTPNotRequested
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, email)
		return false, usecase.ErrOTPNotRequested
	}
	if !matches(e.code, code) {
		return false, nil
	}
	delete(s.entries, email)
	return true, nil
}

// Invalidate removes the code for email.
func (s *MemoryStore) Invalidate(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for email, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
