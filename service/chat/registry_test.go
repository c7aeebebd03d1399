package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounceResolve(t *testing.T) {
	r := NewRegistry()
	c := &Conn{id: "ch-1"}

	_, ok := r.Resolve("p1")
	assert.False(t, ok)

	r.Announce("p1", c)
	got, ok := r.Resolve("p1")
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestAnnounceLastWriterWins(t *testing.T) {
	r := NewRegistry()
	x := &Conn{id: "ch-x"}
	y := &Conn{id: "ch-y"}

	// reconnect from elsewhere without disconnecting the first channel
	r.Announce("p1", x)
	r.Announce("p1", y)

	got, ok := r.Resolve("p1")
	require.True(t, ok)
	assert.Same(t, y, got)
	assert.Equal(t, 1, r.Len())
}

func TestForgetRemovesOnlyExactConn(t *testing.T) {
	r := NewRegistry()
	x := &Conn{id: "ch-x"}
	y := &Conn{id: "ch-y"}

	r.Announce("p1", x)
	r.Announce("p1", y)

	// the stale channel finally closes; the fresh entry must survive
	r.Forget(x)
	got, ok := r.Resolve("p1")
	require.True(t, ok)
	assert.Same(t, y, got)

	r.Forget(y)
	_, ok = r.Resolve("p1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestForgetUnknownConnIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Announce("p1", &Conn{id: "ch-1"})

	r.Forget(&Conn{id: "ch-other"})
	assert.Equal(t, 1, r.Len())
}
