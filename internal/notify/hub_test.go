package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, origins ...string) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(origins)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHub_PublishReachesClients(t *testing.T) {
	hub, server := startHub(t, "*")

	first, _, err := dial(t, server, nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := dial(t, server, nil)
	require.NoError(t, err)
	defer second.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("assets", "movements")

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg RefreshMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, MessageRefresh, msg.Type)
		assert.Equal(t, []string{"assets", "movements"}, msg.Collections)
		assert.False(t, msg.At.IsZero())
	}
}

func TestHub_ClientLeaves(t *testing.T) {
	hub, server := startHub(t, "*")

	conn, _, err := dial(t, server, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, server := startHub(t, "http://localhost:3000")

	_, resp, err := dial(t, server, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		// Nothing drains the queue; publishing past its capacity must still return
		for i := 0; i < cap(hub.broadcast)*2; i++ {
			hub.Publish("assets")
		}
		hub.Publish()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}

func TestHub_PublishOnNilHub(t *testing.T) {
	var hub *Hub
	var notifier interface{ Publish(...string) } = hub

	assert.NotPanics(t, func() { notifier.Publish("assets") })
}
