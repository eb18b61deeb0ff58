package domain

import "time"

// EventType names a change pushed to connected workspace members.
type EventType string

const (
	EventMessageCreated EventType = "message.created"
	EventMessageEdited  EventType = "message.edited"
	EventMessageDeleted EventType = "message.deleted"
	EventMemberJoined   EventType = "member.joined"
	EventMemberLeft     EventType = "member.left"
	EventRoleChanged    EventType = "member.role_changed"
)

// WorkspaceEvent is a committed change in a workspace.
type WorkspaceEvent struct {
	Type        EventType `json:"type"`
	WorkspaceID string    `json:"workspaceID"`
	ActorID     string    `json:"actorID"`
	Payload     any       `json:"payload"`
	OccurredAt  time.Time `json:"occurredAt"`
}
