package domain

import "time"

// WorkspaceType controls who may add members to a workspace.
type WorkspaceType string

const (
	WorkspacePublic  WorkspaceType = "public"
	WorkspacePrivate WorkspaceType = "private"
)

// IsValid reports whether t is a known workspace type.
func (t WorkspaceType) IsValid() bool {
	return t == WorkspacePublic || t == WorkspacePrivate
}

// Workspace is a group chat space with its own roster and message stream.
type Workspace struct {
	WorkspaceID string        `json:"workspaceID"`
	Name        string        `json:"name"`
	Type        WorkspaceType `json:"type"`
	CreatorID   string        `json:"creatorID"`
	ImageURL    *string       `json:"imageURL,omitempty"`
	AuditFields
}

// WorkspaceSettings carries the mutable parts of a workspace. Nil fields are left untouched.
type WorkspaceSettings struct {
	Name     *string
	Type     *WorkspaceType
	ImageURL *string
}

// WorkspaceSummary is a workspace as seen by one of its members.
type WorkspaceSummary struct {
	Workspace
	Role        MembershipRole `json:"role"`
	UnreadCount int            `json:"unreadCount"`
	JoinedAt    time.Time      `json:"joinedAt"`
}
