package domain

// Capability names an operation guarded by the workspace access policy.
type Capability string

const (
	CapJoinPrivate             Capability = "join-private"
	CapJoinPublic              Capability = "join-public"
	CapManageMembers           Capability = "manage-members"
	CapRemoveMember            Capability = "remove-member"
	CapSendMessage             Capability = "send-message"
	CapReadMessages            Capability = "read-messages"
	CapDeleteWorkspace         Capability = "delete-workspace"
	CapUpdateWorkspaceSettings Capability = "update-workspace-settings"
)

// AccessSubject is everything the policy needs to decide a request: who is asking,
// on which workspace, the caller's membership there (nil when none) and, for
// operations aimed at another user, that user's id.
type AccessSubject struct {
	ActorID      string
	Workspace    *Workspace
	Membership   *Membership
	TargetUserID string
}
