package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SaurabhVishwakarma412/PedoDerma/logger"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging"
	tsec "github.com/SaurabhVishwakarma412/PedoDerma/tools/security"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server owns the live connections: it upgrades, reads, dispatches, and is
// the messaging.Pusher the delivery coordinator pushes through.
type Server struct {
	registry *Registry
	svc      *messaging.Service
	disp     *Dispatcher
	jwtOpts  tsec.Options
}

func NewServer(registry *Registry, svc *messaging.Service, jwtOpts tsec.Options) *Server {
	s := &Server{
		registry: registry,
		svc:      svc,
		disp:     NewDispatcher(),
		jwtOpts:  jwtOpts,
	}
	s.disp.Register(EventAnnounce, s.handleAnnounce)
	s.disp.Register(EventSend, s.handleSend)
	s.disp.Register(EventPing, s.handlePing)
	return s
}

// HandleWS upgrades the request and runs the connection's read loop until
// the peer goes away. Disconnect cleanup always runs: the presence entry for
// this exact connection is forgotten and the writer shut down.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed: %v", err)
		return
	}

	conn := newConn(ws)
	go conn.writePump()

	defer func() {
		s.registry.Forget(conn)
		conn.close()
		logger.Infof("[ws] closed conn=%s participant=%s", conn.ID(), conn.participant())
	}()

	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[ws] peer closed conn=%s", conn.ID())
			} else {
				logger.Infof("[ws] read error conn=%s: %v", conn.ID(), rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			logger.Infof("[ws] bad frame conn=%s: %v", conn.ID(), perr)
			conn.enqueue(buildError("malformed frame"))
			continue
		}

		if derr := s.disp.Dispatch(conn, frame); derr != nil {
			logger.Infof("[ws] %s handler conn=%s: %v", frame.Event, conn.ID(), derr)
			conn.enqueue(buildError(derr.Error()))
		}
	}
}

// PushTo implements messaging.Pusher. An absent recipient is a silent drop —
// the message is already durable and surfaces on the next history fetch. A
// resolved connection still bound to the sender is also dropped so a sender
// never sees its own message come back as a receive event.
func (s *Server) PushTo(participantID string, ev messaging.ReceiveEvent) error {
	conn, ok := s.registry.Resolve(participantID)
	if !ok {
		return nil
	}
	if conn.participant() == ev.From {
		return nil
	}
	conn.enqueue(buildReceive(ev))
	return nil
}
