package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/SaurabhVishwakarma412/PedoDerma/logger"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging"
	tsec "github.com/SaurabhVishwakarma412/PedoDerma/tools/security"
)

const sendTimeout = 10 * time.Second

// handleAnnounce verifies the token, binds the participant to this
// connection, and registers presence. Re-announcing from a second connection
// overwrites the entry; the old connection keeps running but no longer
// receives pushes.
func (s *Server) handleAnnounce(c *Conn, f *Frame) error {
	var p AnnouncePayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return errors.Wrap(err, "announce payload")
	}
	if p.Token == "" {
		return errors.New("announce requires a token")
	}

	id, err := tsec.Verify(s.jwtOpts, p.Token)
	if err != nil {
		return errors.New("announce token rejected")
	}

	c.bind(id.ParticipantID)
	s.registry.Announce(id.ParticipantID, c)
	logger.Infof("[ws] announce participant=%s conn=%s", id.ParticipantID, c.ID())

	c.enqueue(buildAnnounceAck(id.ParticipantID, c.ID()))
	return nil
}

// handleSend forwards a chat message to the delivery coordinator. The sender
// is the connection's authenticated binding; an unannounced connection
// cannot send.
func (s *Server) handleSend(c *Conn, f *Frame) error {
	from := c.participant()
	if from == "" {
		return errors.New("send before announce")
	}

	var p SendPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return errors.Wrap(err, "send payload")
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if _, err := s.svc.Send(ctx, messaging.SendInput{
		From:        from,
		To:          p.To,
		Body:        p.Body,
		SentAt:      p.SentAt,
		ClientMsgID: p.ClientMsgID,
	}); err != nil {
		// surfaced to the sender; nothing was pushed
		return err
	}
	return nil
}

func (s *Server) handlePing(c *Conn, _ *Frame) error {
	c.enqueue(buildPong())
	return nil
}
