package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn, r.URL.Query().Get("ws"), r.URL.Query().Get("user")).Serve()
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, workspaceID, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?ws=" + workspaceID + "&user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.WorkspaceEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	var event domain.WorkspaceEvent
	require.NoError(t, json.Unmarshal(frame, &event))
	return event
}

func TestHub_DeliversOnlyToWorkspaceRoom(t *testing.T) {
	hub, srv := startHub(t)
	alice := dial(t, srv, "ws1", "alice")
	carol := dial(t, srv, "ws2", "carol")
	require.Eventually(t, func() bool {
		return hub.ConnectedUsers("ws1") == 1 && hub.ConnectedUsers("ws2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.WorkspaceEvent{Type: domain.EventMessageCreated, WorkspaceID: "ws1", ActorID: "bob"})

	event := readEvent(t, alice)
	assert.Equal(t, domain.EventMessageCreated, event.Type)
	assert.Equal(t, "ws1", event.WorkspaceID)

	require.NoError(t, carol.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := carol.ReadMessage()
	assert.Error(t, err, "other rooms receive nothing")
}

func TestHub_LeavingMemberIsDisconnectedAfterNotice(t *testing.T) {
	hub, srv := startHub(t)
	alice := dial(t, srv, "ws1", "alice")
	bob := dial(t, srv, "ws1", "bob")
	require.Eventually(t, func() bool { return hub.ConnectedUsers("ws1") == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.WorkspaceEvent{
		Type:        domain.EventMemberLeft,
		WorkspaceID: "ws1",
		ActorID:     "bob",
		Payload:     domain.Membership{UserID: "bob", WorkspaceID: "ws1", IsRemoved: true},
	})

	assert.Equal(t, domain.EventMemberLeft, readEvent(t, bob).Type)
	assert.Equal(t, domain.EventMemberLeft, readEvent(t, alice).Type)
	require.Eventually(t, func() bool { return hub.ConnectedUsers("ws1") == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBufferSize+10; i++ {
			hub.Publish(domain.WorkspaceEvent{WorkspaceID: "ws1"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}
