package store

import (
	"context"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
)

// Store is the persistence seam of the messaging core. Everything above it
// (delivery, aggregation, handlers) depends only on these four operations,
// not on any particular engine.
type Store interface {
	// Insert persists m and returns its server-assigned id. When
	// m.ClientMsgID is set and a message with the same (from, client_msg_id)
	// already exists, Insert is a no-op returning the stored id.
	Insert(ctx context.Context, m *model.Message) (string, error)

	// QueryByPair returns every message exchanged between a and b, ordered
	// by sent_at ascending.
	QueryByPair(ctx context.Context, a, b string) ([]model.Message, error)

	// QueryAllInvolving returns every message where participantID is sender
	// or recipient, ordered by sent_at ascending.
	QueryAllInvolving(ctx context.Context, participantID string) ([]model.Message, error)

	// MarkRead flags every unread message from counterpartID to readerID as
	// read and returns how many were flipped. Idempotent.
	MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error)
}
