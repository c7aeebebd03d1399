package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
)

// memStore is the in-process Store used by tests and in-memory dev runs.
// Same contract as the Mongo implementation, including client-key
// idempotency.
type memStore struct {
	mu     sync.RWMutex
	msgs   []*model.Message
	byCKey map[string]*model.Message // from|client_msg_id -> msg
}

func NewMemory() Store {
	return &memStore{byCKey: make(map[string]*model.Message)}
}

func clientKey(from, cid string) string { return from + "|" + cid }

func (s *memStore) Insert(ctx context.Context, m *model.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ClientMsgID != "" {
		if prev, ok := s.byCKey[clientKey(m.From, m.ClientMsgID)]; ok {
			return prev.ID, nil
		}
	}

	cp := *m
	cp.ID = uuid.NewString()
	s.msgs = append(s.msgs, &cp)
	if cp.ClientMsgID != "" {
		s.byCKey[clientKey(cp.From, cp.ClientMsgID)] = &cp
	}
	m.ID = cp.ID
	return cp.ID, nil
}

func (s *memStore) QueryByPair(ctx context.Context, a, b string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Message
	for _, m := range s.msgs {
		if (m.From == a && m.To == b) || (m.From == b && m.To == a) {
			out = append(out, *m)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (s *memStore) QueryAllInvolving(ctx context.Context, participantID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Message
	for _, m := range s.msgs {
		if m.From == participantID || m.To == participantID {
			out = append(out, *m)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (s *memStore) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, m := range s.msgs {
		if m.To == readerID && m.From == counterpartID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func sortBySentAt(ms []model.Message) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].SentAt < ms[j].SentAt })
}
