package directory

import (
	"context"
	"sync"
)

// Doctor is the directory projection parents pick a counterpart from: just
// enough to start a conversation.
type Doctor struct {
	ID             string `bson:"_id,omitempty" json:"_id"`
	Name           string `bson:"name" json:"name"`
	Specialization string `bson:"specialization" json:"specialization"`
}

type Store interface {
	List(ctx context.Context) ([]Doctor, error)
	Seed(ctx context.Context, doctors []Doctor) error
}

type memStore struct {
	mu      sync.RWMutex
	doctors []Doctor
}

func NewMemory() Store { return &memStore{} }

func (s *memStore) List(ctx context.Context) ([]Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out, nil
}

func (s *memStore) Seed(ctx context.Context, doctors []Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors = append(s.doctors, doctors...)
	return nil
}
