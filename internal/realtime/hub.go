// Package realtime pushes committed workspace events to members connected over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames; anything larger is a protocol error.
	maxMessageSize = 512

	sendBufferSize  = 64
	eventBufferSize = 512
)

// Hub keeps one room per workspace and fans events out to the room's clients.
// All room bookkeeping happens on the Run goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	events     chan domain.WorkspaceEvent
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	logger *slog.Logger
}

var _ portssvc.EventPublisher = (*Hub)(nil)

// NewHub creates an idle hub. Call Run to start delivering.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan domain.WorkspaceEvent, eventBufferSize),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		logger:     logger.With(slog.String("component", "realtime_hub")),
	}
}

// Publish queues an event for delivery. It never blocks the caller; when the queue is
// full the event is dropped and clients catch up on their next listing.
func (h *Hub) Publish(event domain.WorkspaceEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn("Event queue full, dropping event",
			slog.String("workspace_id", event.WorkspaceID),
			slog.String("type", string(event.Type)))
	}
}

// Run processes registrations and events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Realtime hub running")
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.shutdown()
			h.logger.Info("Realtime hub stopped")
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// join hands client to the Run loop. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ConnectedUsers returns how many clients are connected to a workspace room.
func (h *Hub) ConnectedUsers(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[workspaceID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.workspaceID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.workspaceID] = room
	}
	room[client] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("Client joined room",
		slog.String("workspace_id", client.workspaceID),
		slog.String("user_id", client.userID))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[client.workspaceID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.workspaceID)
	}
}

func (h *Hub) deliver(event domain.WorkspaceEvent) {
	frame, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to encode event", slog.String("type", string(event.Type)), slog.String("error", err.Error()))
		return
	}

	// A member who left stops receiving the room's traffic after this frame.
	var leaving string
	if event.Type == domain.EventMemberLeft {
		if m, ok := event.Payload.(domain.Membership); ok {
			leaving = m.UserID
		}
	}

	h.mu.RLock()
	recipients := make([]*Client, 0, len(h.rooms[event.WorkspaceID]))
	for client := range h.rooms[event.WorkspaceID] {
		recipients = append(recipients, client)
	}
	h.mu.RUnlock()

	for _, client := range recipients {
		select {
		case client.send <- frame:
		default:
			h.logger.Warn("Client send buffer full, disconnecting",
				slog.String("workspace_id", client.workspaceID),
				slog.String("user_id", client.userID))
			h.removeClient(client)
			continue
		}
		if leaving != "" && client.userID == leaving {
			h.removeClient(client)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, id)
	}
}
