package model

// Collection / field names for the messages collection. Queries reference
// these constants instead of string literals.
const (
	MessageTableName = "messages"

	MessageFieldID          = "_id"
	MessageFieldClientMsgID = "client_msg_id"
	MessageFieldFrom        = "from"
	MessageFieldTo          = "to"
	MessageFieldBody        = "body"
	MessageFieldSentAt      = "sent_at"
	MessageFieldRead        = "read"
)

// DedupWindowMS is the tolerance window for the read-time duplicate collapse:
// two stored messages with equal from/to/body whose sent_at differ by no more
// than this are treated as one logical message. Write-time idempotency by
// client_msg_id is the primary guard; this covers writes that arrive without
// a key.
const DedupWindowMS int64 = 1000

// Message is one chat message between two participants. Once persisted only
// Read may change.
type Message struct {
	ID string `bson:"_id,omitempty" json:"id"`

	// ClientMsgID is the client-generated idempotency key. The live channel
	// and the REST fallback both persist the same send; sharing the key lets
	// the store collapse the dual write.
	ClientMsgID string `bson:"client_msg_id,omitempty" json:"clientMsgId,omitempty"`

	From   string `bson:"from" json:"from"`
	To     string `bson:"to" json:"to"`
	Body   string `bson:"body" json:"body"`
	SentAt int64  `bson:"sent_at" json:"sentAt"` // unix millis
	Read   bool   `bson:"read" json:"read"`
}

// Conversation is the per-viewer summary of one counterpart. Derived from the
// message store on every query, never persisted.
type Conversation struct {
	CounterpartID   string `json:"counterpartId"`
	LastMessageBody string `json:"lastMessageBody"`
	LastMessageAt   int64  `json:"lastMessageAt"`
	UnreadCount     int    `json:"unreadCount"`
}
