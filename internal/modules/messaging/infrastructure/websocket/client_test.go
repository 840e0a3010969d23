package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func TestServeWs_EndToEndUnicast(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	ready := func(string, []byte) []byte { return []byte("ready") }
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, "alice", ready)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// a reply proves the connection is registered with the hub
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("sync")))
	_, body, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "ready", string(body))

	hub.SendToUser("alice", []byte("notify"))
	msgType, body, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)
	assert.Equal(t, "notify", string(body))
}

func TestServeWs_InboundReply(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inbound := func(userID string, frame []byte) []byte {
		return []byte(userID + ":" + strings.ToUpper(string(frame)))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, "alice", inbound)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, body, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "alice:HELLO", string(body))
}

func TestServeWs_UpgradeFailure(t *testing.T) {
	hub := NewHub()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()

	ServeWs(hub, w, req, "alice", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
