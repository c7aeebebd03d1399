package messaging

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/SaurabhVishwakarma412/PedoDerma/logger"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/store"
)

var (
	ErrMissingParticipant = errors.New("from and to are required")
	ErrSameParticipant    = errors.New("sender and recipient must differ")
	ErrEmptyBody          = errors.New("message body is empty")
)

// ReceiveEvent is the optimistic live notification pushed to a connected
// recipient. No id: the recipient's next history fetch is authoritative and
// reconciles by content.
type ReceiveEvent struct {
	From   string `json:"from"`
	Body   string `json:"body"`
	SentAt int64  `json:"sentAt"`
}

// Pusher delivers an event to a participant's live channel if one is
// connected. Absent recipients are a silent no-op, not an error.
type Pusher interface {
	PushTo(participantID string, ev ReceiveEvent) error
}

// NopPusher serves REST-only runs and tests that don't care about push.
type NopPusher struct{}

func (NopPusher) PushTo(string, ReceiveEvent) error { return nil }

// Service is the messaging core: delivery coordination, conversation
// aggregation, read acknowledgement. One instance per process.
type Service struct {
	store  store.Store
	pusher Pusher
}

func NewService(st store.Store) *Service {
	return &Service{store: st, pusher: NopPusher{}}
}

// AttachPusher wires the live channel in after the gateway exists. Before
// that, sends persist but never push.
func (s *Service) AttachPusher(p Pusher) {
	if p != nil {
		s.pusher = p
	}
}

// SendInput is a send request with the sender already authenticated by the
// caller. From never comes from a client payload.
type SendInput struct {
	From        string
	To          string
	Body        string
	SentAt      int64  // unix millis; zero means "now"
	ClientMsgID string // optional idempotency key
}

// Send persists the message, then best-effort pushes it to the recipient's
// live channel. Persistence failure fails the send; push failure does not.
func (s *Service) Send(ctx context.Context, in SendInput) (model.Message, error) {
	if in.From == "" || in.To == "" {
		return model.Message{}, ErrMissingParticipant
	}
	if in.From == in.To {
		return model.Message{}, ErrSameParticipant
	}
	if in.Body == "" {
		return model.Message{}, ErrEmptyBody
	}
	if in.SentAt == 0 {
		in.SentAt = time.Now().UnixMilli()
	}

	msg := model.Message{
		ClientMsgID: in.ClientMsgID,
		From:        in.From,
		To:          in.To,
		Body:        in.Body,
		SentAt:      in.SentAt,
	}
	if _, err := s.store.Insert(ctx, &msg); err != nil {
		return model.Message{}, err
	}

	// Durable from here on. A failed or dropped push only delays visibility
	// until the recipient's next history fetch.
	ev := ReceiveEvent{From: msg.From, Body: msg.Body, SentAt: msg.SentAt}
	if err := s.pusher.PushTo(msg.To, ev); err != nil {
		logger.Errorf("push to %s failed (message %s stored): %v", msg.To, msg.ID, err)
	}
	return msg, nil
}
