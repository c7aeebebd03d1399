package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
)

func TestInsertAssignsID(t *testing.T) {
	s := NewMemory()
	msg := &model.Message{From: "p1", To: "d1", Body: "Hello", SentAt: 1000}

	id, err := s.Insert(context.Background(), msg)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, msg.ID)
}

func TestInsertIdempotentByClientKey(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first := &model.Message{ClientMsgID: "ck-1", From: "p1", To: "d1", Body: "Hello", SentAt: 1000}
	id1, err := s.Insert(ctx, first)
	require.NoError(t, err)

	// the REST fallback persisting the same logical send
	second := &model.Message{ClientMsgID: "ck-1", From: "p1", To: "d1", Body: "Hello", SentAt: 1000}
	id2, err := s.Insert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	msgs, err := s.QueryByPair(ctx, "p1", "d1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestClientKeyScopedToSender(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Insert(ctx, &model.Message{ClientMsgID: "ck-1", From: "p1", To: "d1", Body: "a", SentAt: 1})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{ClientMsgID: "ck-1", From: "d1", To: "p1", Body: "b", SentAt: 2})
	require.NoError(t, err)

	msgs, err := s.QueryByPair(ctx, "p1", "d1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestQueryByPairOrderedAndScoped(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Insert(ctx, &model.Message{From: "p1", To: "d1", Body: "second", SentAt: 2000})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{From: "d1", To: "p1", Body: "first", SentAt: 500})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{From: "p2", To: "d1", Body: "other pair", SentAt: 100})
	require.NoError(t, err)

	msgs, err := s.QueryByPair(ctx, "p1", "d1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
}

func TestQueryAllInvolving(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Insert(ctx, &model.Message{From: "p1", To: "d1", Body: "a", SentAt: 1})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{From: "d2", To: "p1", Body: "b", SentAt: 2})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{From: "p2", To: "d2", Body: "c", SentAt: 3})
	require.NoError(t, err)

	msgs, err := s.QueryAllInvolving(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestMarkReadIdempotent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Insert(ctx, &model.Message{From: "d1", To: "p1", Body: "a", SentAt: 1})
	require.NoError(t, err)
	_, err = s.Insert(ctx, &model.Message{From: "d1", To: "p1", Body: "b", SentAt: 2})
	require.NoError(t, err)
	// p1's own message must stay untouched
	_, err = s.Insert(ctx, &model.Message{From: "p1", To: "d1", Body: "c", SentAt: 3})
	require.NoError(t, err)

	n, err := s.MarkRead(ctx, "p1", "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.MarkRead(ctx, "p1", "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	msgs, err := s.QueryByPair(ctx, "p1", "d1")
	require.NoError(t, err)
	for _, m := range msgs {
		if m.To == "p1" {
			assert.True(t, m.Read)
		} else {
			assert.False(t, m.Read)
		}
	}
}
