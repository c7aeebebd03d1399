package messaging

import (
	"context"
	"sort"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
)

// ListConversations derives the viewer's conversation list from the message
// store: one entry per counterpart, newest conversation first. Recomputed on
// every call; nothing is cached or persisted.
func (s *Service) ListConversations(ctx context.Context, participantID string) ([]model.Conversation, error) {
	msgs, err := s.store.QueryAllInvolving(ctx, participantID)
	if err != nil {
		return nil, err
	}

	byCounterpart := make(map[string]*model.Conversation)
	for _, m := range msgs {
		other := m.From
		if m.From == participantID {
			other = m.To
		}
		c, ok := byCounterpart[other]
		if !ok {
			c = &model.Conversation{CounterpartID: other}
			byCounterpart[other] = c
		}
		if m.SentAt >= c.LastMessageAt {
			c.LastMessageAt = m.SentAt
			c.LastMessageBody = m.Body
		}
		if m.To == participantID && !m.Read {
			c.UnreadCount++
		}
	}

	out := make([]model.Conversation, 0, len(byCounterpart))
	for _, c := range byCounterpart {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt > out[j].LastMessageAt
	})
	return out, nil
}

// History returns every message between a and b, oldest first, with
// accidental duplicates from the dual-write paths collapsed.
func (s *Service) History(ctx context.Context, a, b string) ([]model.Message, error) {
	msgs, err := s.store.QueryByPair(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return collapseDuplicates(msgs), nil
}

// MarkRead flags everything counterpart sent to reader as read. Safe to call
// repeatedly; already-read messages stay read.
func (s *Service) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	return s.store.MarkRead(ctx, readerID, counterpartID)
}

// collapseDuplicates drops a message when an earlier kept one has the same
// from/to/body and a sent_at within the tolerance window. Input must be
// sorted by sent_at ascending, which keeps the scan local: only kept
// messages still inside the window need comparing.
func collapseDuplicates(msgs []model.Message) []model.Message {
	if len(msgs) < 2 {
		return msgs
	}
	kept := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		dup := false
		for i := len(kept) - 1; i >= 0; i-- {
			if m.SentAt-kept[i].SentAt > model.DedupWindowMS {
				break
			}
			if kept[i].From == m.From && kept[i].To == m.To && kept[i].Body == m.Body {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, m)
		}
	}
	return kept
}
