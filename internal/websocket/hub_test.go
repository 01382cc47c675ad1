package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func recv(t *testing.T, c *Client) Notification {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var n Notification
		require.NoError(t, json.Unmarshal(msg, &n))
		return n
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
	return Notification{}
}

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	h := startHub(t)
	a := &Client{Send: make(chan []byte, 4), Topic: Topic("ticket", 1)}
	b := &Client{Send: make(chan []byte, 4), Topic: Topic("ticket", 1)}
	other := &Client{Send: make(chan []byte, 4), Topic: Topic("ticket", 2)}
	h.Register <- a
	h.Register <- b
	h.Register <- other

	h.Publish("ticket:1", EventTicketResponse, map[string]string{"message": "hello"})

	for _, c := range []*Client{a, b} {
		n := recv(t, c)
		assert.Equal(t, "ticket:1", n.Topic)
		assert.Equal(t, EventTicketResponse, n.Event)
		assert.Equal(t, map[string]any{"message": "hello"}, n.Payload)
	}

	select {
	case <-other.Send:
		t.Fatal("client on another topic received a notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := &Client{Send: make(chan []byte, 1), Topic: "tribute:3"}
	h.Register <- c
	h.Unregister <- c

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	// A second unregister must not panic on the closed channel.
	h.Unregister <- c
}

func TestHubDropsSlowClient(t *testing.T) {
	h := startHub(t)
	slow := &Client{Send: make(chan []byte, 1), Topic: "ticket:9"}
	slow.Send <- []byte("stale")
	h.Register <- slow

	h.Publish("ticket:9", EventTicketClosed, nil)

	// The hub handles messages in order, so once this one arrives the
	// broadcast to the slow client has been attempted.
	probe := &Client{Send: make(chan []byte, 1), Topic: "ticket:10"}
	h.Register <- probe
	h.Publish("ticket:10", EventTicketClosed, nil)
	recv(t, probe)

	assert.Equal(t, []byte("stale"), <-slow.Send)
	_, ok := <-slow.Send
	assert.False(t, ok, "slow client should be closed")
}

func TestValidTopic(t *testing.T) {
	assert.True(t, ValidTopic("ticket:12"))
	assert.True(t, ValidTopic("tribute:3"))
	assert.False(t, ValidTopic("ticket:"))
	assert.False(t, ValidTopic("admin:1"))
	assert.False(t, ValidTopic("ticket:1/../2"))
}

func TestHubStoppedDoesNotBlock(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{Send: make(chan []byte, 1), Topic: "ticket:9"}
	go h.Run(ctx)
	require.True(t, h.Subscribe(c))

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, ok := <-c.Send
	assert.False(t, ok, "subscribers are closed on shutdown")

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		assert.False(t, h.Subscribe(&Client{Send: make(chan []byte, 1), Topic: "ticket:9"}))
		h.Unsubscribe(c)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("subscribe after shutdown blocked")
	}
}
