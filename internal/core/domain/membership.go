package domain

import "time"

// MembershipRole is the role a user holds within a workspace.
type MembershipRole string

const (
	RoleAdmin  MembershipRole = "admin"
	RoleMember MembershipRole = "member"
)

// Membership links a user to a workspace. Rows are never deleted; leaving or being
// removed flips IsRemoved and re-adding flips it back on the same row.
type Membership struct {
	MembershipID string         `json:"membershipID"`
	WorkspaceID  string         `json:"workspaceID"`
	UserID       string         `json:"userID"`
	Role         MembershipRole `json:"role"`
	IsRemoved    bool           `json:"isRemoved"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// IsActive reports whether the membership currently grants access.
func (m *Membership) IsActive() bool {
	return m != nil && !m.IsRemoved
}

// IsActiveAdmin reports whether the membership is active and holds the admin role.
func (m *Membership) IsActiveAdmin() bool {
	return m.IsActive() && m.Role == RoleAdmin
}

// MemberFilter narrows a roster listing.
type MemberFilter struct {
	IncludeRemoved bool
	Window         PageWindow
}
