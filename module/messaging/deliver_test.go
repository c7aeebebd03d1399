package messaging

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/store"
)

type recordPusher struct {
	targets []string
	events  []ReceiveEvent
	err     error
}

func (p *recordPusher) PushTo(participantID string, ev ReceiveEvent) error {
	p.targets = append(p.targets, participantID)
	p.events = append(p.events, ev)
	return p.err
}

type failingStore struct{}

func (failingStore) Insert(context.Context, *model.Message) (string, error) {
	return "", errors.New("write failed")
}
func (failingStore) QueryByPair(context.Context, string, string) ([]model.Message, error) {
	return nil, nil
}
func (failingStore) QueryAllInvolving(context.Context, string) ([]model.Message, error) {
	return nil, nil
}
func (failingStore) MarkRead(context.Context, string, string) (int64, error) {
	return 0, nil
}

func TestSendValidation(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Send(ctx, SendInput{To: "d1", Body: "x"})
	assert.ErrorIs(t, err, ErrMissingParticipant)

	_, err = svc.Send(ctx, SendInput{From: "p1", To: "p1", Body: "x"})
	assert.ErrorIs(t, err, ErrSameParticipant)

	_, err = svc.Send(ctx, SendInput{From: "p1", To: "d1"})
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestSendPersistsBeforePush(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	// recipient has no live channel at all (NopPusher): the send still
	// succeeds and the message is retrievable from history
	msg, err := svc.Send(ctx, SendInput{From: "p1", To: "d1", Body: "Hello", SentAt: 1000})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Read)

	history, err := svc.History(ctx, "d1", "p1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Hello", history[0].Body)
}

func TestSendPushesToRecipient(t *testing.T) {
	svc := NewService(store.NewMemory())
	pusher := &recordPusher{}
	svc.AttachPusher(pusher)

	_, err := svc.Send(context.Background(), SendInput{From: "p1", To: "d1", Body: "Hello", SentAt: 1000})
	require.NoError(t, err)

	require.Len(t, pusher.events, 1)
	assert.Equal(t, []string{"d1"}, pusher.targets)
	assert.Equal(t, ReceiveEvent{From: "p1", Body: "Hello", SentAt: 1000}, pusher.events[0])
}

func TestSendSwallowsPushFailure(t *testing.T) {
	svc := NewService(store.NewMemory())
	svc.AttachPusher(&recordPusher{err: errors.New("conn gone")})
	ctx := context.Background()

	msg, err := svc.Send(ctx, SendInput{From: "p1", To: "d1", Body: "Hello", SentAt: 1000})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	history, err := svc.History(ctx, "p1", "d1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSendFailsClosedOnPersistenceError(t *testing.T) {
	svc := NewService(failingStore{})
	pusher := &recordPusher{}
	svc.AttachPusher(pusher)

	_, err := svc.Send(context.Background(), SendInput{From: "p1", To: "d1", Body: "Hello"})
	require.Error(t, err)
	// no push may be attempted after a failed write
	assert.Empty(t, pusher.events)
}

func TestSendStampsSentAtWhenMissing(t *testing.T) {
	svc := NewService(store.NewMemory())

	msg, err := svc.Send(context.Background(), SendInput{From: "p1", To: "d1", Body: "Hello"})
	require.NoError(t, err)
	assert.NotZero(t, msg.SentAt)
}
