package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendToUser_OnlyMatchingClientsReceive(t *testing.T) {
	h := NewHub()
	target := &Client{send: make(chan []byte, 1), userID: "alice"}
	second := &Client{send: make(chan []byte, 1), userID: "alice"}
	other := &Client{send: make(chan []byte, 1), userID: "bob"}
	h.clients[target] = true
	h.clients[second] = true
	h.clients[other] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser("alice", []byte("only-alice"))

	for _, c := range []*Client{target, second} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "only-alice", string(msg))
		case <-time.After(2 * time.Second):
			t.Fatal("alice connection did not receive message")
		}
	}

	select {
	case <-other.send:
		t.Fatal("bob should not receive alice's message")
	default:
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := NewHub()
	slow := &Client{send: make(chan []byte), userID: "alice"}
	h.clients[slow] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser("alice", []byte("x"))
	// the next send is only accepted after the previous one was processed
	h.SendToUser("nobody", nil)

	_, ok := <-slow.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := &Client{send: make(chan []byte, 1), userID: "alice"}
	require.True(t, h.add(c))
	h.SendToUser("alice", []byte("hello"))
	assert.Equal(t, "hello", string(<-c.send))

	h.remove(c)
	h.SendToUser("nobody", nil)
	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_StopClosesClients(t *testing.T) {
	h := NewHub()
	c := &Client{send: make(chan []byte, 1), userID: "alice"}
	h.clients[c] = true

	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	h.Stop()
	h.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	_, ok := <-c.send
	assert.False(t, ok)

	// no-ops after stop
	h.SendToUser("alice", []byte("late"))
	assert.False(t, h.add(&Client{send: make(chan []byte, 1)}))
}
