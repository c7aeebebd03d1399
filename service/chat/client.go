package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SaurabhVishwakarma412/PedoDerma/logger"
)

const (
	writeWait     = 5 * time.Second
	sendQueueSize = 64
)

// Conn is one live websocket connection. Reads happen on the gateway's read
// loop; all writes are serialized through the send queue and the writer
// goroutine, so handlers never touch the socket directly.
type Conn struct {
	id string
	ws *websocket.Conn

	send chan []byte
	done chan struct{}

	mu            sync.RWMutex
	participantID string // empty until an announce binds it

	closeOnce sync.Once
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

// ID is the channel handle: unique per connection, unrelated to identity.
func (c *Conn) ID() string { return c.id }

func (c *Conn) bind(participantID string) {
	c.mu.Lock()
	c.participantID = participantID
	c.mu.Unlock()
}

func (c *Conn) participant() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.participantID
}

// enqueue hands data to the writer goroutine. A full queue drops the frame:
// push is fire-and-forget and the store already has the message.
func (c *Conn) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	default:
		logger.Warn("send queue full, dropping frame for conn " + c.id)
		return false
	}
}

// writePump drains the send queue onto the socket with a write deadline.
// Exactly one per connection; exits when close() fires.
func (c *Conn) writePump() {
	for {
		select {
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Infof("[ws] write error conn=%s: %v", c.id, err)
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}
