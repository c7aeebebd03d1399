package chat

import (
	"github.com/pkg/errors"
)

// HandlerFunc processes one inbound frame on behalf of a connection. Frames
// on a single connection are handled to completion, in arrival order.
type HandlerFunc func(c *Conn, f *Frame) error

// Dispatcher routes inbound frames by event name.
type Dispatcher struct {
	handlers map[string]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

func (d *Dispatcher) Register(event string, h HandlerFunc) {
	d.handlers[event] = h
}

func (d *Dispatcher) Dispatch(c *Conn, f *Frame) error {
	h, ok := d.handlers[f.Event]
	if !ok {
		return errors.Errorf("no handler for event %q", f.Event)
	}
	return h(c, f)
}
