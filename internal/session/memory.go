package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store. It backs tests and single-node
// deployments that run without redis.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
}

type entry struct {
	userID  uint
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]entry)}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.m[token] = entry{userID: userID, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) UserID(_ context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[token]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(e.expires) {
		delete(s.m, token)
		return 0, false, nil
	}
	return e.userID, true, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
	return nil
}
