package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/portfolio-api/internal/domain"
)

// VerificationStore keeps pending contact verifications in process memory,
// keyed by session id. Contents do not survive a restart.
type VerificationStore struct {
	mu      sync.Mutex
	pending map[string]*domain.PendingVerification
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{pending: make(map[string]*domain.PendingVerification)}
}

// Put inserts or overwrites the record for sessionID.
func (s *VerificationStore) Put(sessionID string, v *domain.PendingVerification) {
	s.mu.Lock()
	s.pending[sessionID] = v
	s.mu.Unlock()
}

// Get returns a copy of the record so callers cannot mutate stored state.
func (s *VerificationStore) Get(sessionID string) (*domain.PendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.pending[sessionID]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

// Remove deletes the record if present. Removing an absent id is a no-op.
func (s *VerificationStore) Remove(sessionID string) {
	s.mu.Lock()
	delete(s.pending, sessionID)
	s.mu.Unlock()
}

// Take removes the record for sessionID only if it still carries the given
// code and expiry, i.e. nobody redeemed or replaced it since it was read.
// Exactly one of several concurrent callers wins.
func (s *VerificationStore) Take(sessionID string, seen *domain.PendingVerification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.pending[sessionID]
	if !ok || cur.Code != seen.Code || !cur.ExpiresAt.Equal(seen.ExpiresAt) {
		return false
	}
	delete(s.pending, sessionID)
	return true
}

// Restore puts a taken record back unless the id was reused meanwhile.
func (s *VerificationStore) Restore(v *domain.PendingVerification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[v.SessionID]; !exists {
		s.pending[v.SessionID] = v
	}
}

// Len reports the number of pending records, expired ones included.
func (s *VerificationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Sweep drops every record expired at now and returns how many were removed.
func (s *VerificationStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, v := range s.pending {
		if v.Expired(now) {
			delete(s.pending, id)
			n++
		}
	}
	return n
}

// StartJanitor sweeps expired records every interval until ctx is done.
// Expiry is still enforced on access; the janitor only bounds memory.
func (s *VerificationStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.Sweep(now); n > 0 {
					slog.Info("swept expired verifications", "count", n)
				}
			}
		}
	}()
}
