package chat

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging"
)

// Named events of the live channel. "disconnect" is the transport close, not
// a frame.
const (
	EventAnnounce = "announce"
	EventSend     = "send"
	EventReceive  = "receive"
	EventPing     = "ping"
	EventPong     = "pong"
	EventError    = "error"
	EventAck      = "announce_ack"
)

// Frame is the wire shape of every event: a name plus a JSON payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AnnouncePayload carries the client's bearer token. The participant id is
// taken from the verified token, never from the payload.
type AnnouncePayload struct {
	Token string `json:"token"`
}

// SendPayload is an inbound chat message. No "from": the sender is whoever
// announced on this connection.
type SendPayload struct {
	To          string `json:"to"`
	Body        string `json:"body"`
	SentAt      int64  `json:"sentAt"`
	ClientMsgID string `json:"clientMsgId"`
}

type ackPayload struct {
	ParticipantID string `json:"participantId"`
	ConnID        string `json:"connId"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal frame")
	}
	if f.Event == "" {
		return nil, errors.New("frame has no event")
	}
	return &f, nil
}

func marshalFrame(event string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	out, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return nil
	}
	return out
}

func buildReceive(ev messaging.ReceiveEvent) []byte {
	return marshalFrame(EventReceive, ev)
}

func buildAnnounceAck(participantID, connID string) []byte {
	return marshalFrame(EventAck, ackPayload{ParticipantID: participantID, ConnID: connID})
}

func buildError(msg string) []byte {
	return marshalFrame(EventError, errorPayload{Message: msg})
}

func buildPong() []byte {
	out, _ := json.Marshal(Frame{Event: EventPong})
	return out
}
