package dto

import (
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// AddMemberRequest names the user to add. An empty body joins the caller.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"omitempty,max=255"`
}

// ListMembersQuery binds the roster listing parameters.
type ListMembersQuery struct {
	PageQuery
	IncludeRemoved bool `form:"includeRemoved"`
}

// MembershipResponse defines data returned for a membership.
type MembershipResponse struct {
	MembershipID string    `json:"membershipID"`
	WorkspaceID  string    `json:"workspaceID"`
	UserID       string    `json:"userID"`
	Role         string    `json:"role"`
	IsRemoved    bool      `json:"isRemoved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		MembershipID: m.MembershipID,
		WorkspaceID:  m.WorkspaceID,
		UserID:       m.UserID,
		Role:         string(m.Role),
		IsRemoved:    m.IsRemoved,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToMembershipResponses converts a roster window to DTOs.
func ToMembershipResponses(ms []domain.Membership) []MembershipResponse {
	list := make([]MembershipResponse, len(ms))
	for i := range ms {
		list[i] = ToMembershipResponse(&ms[i])
	}
	return list
}

// RemoveMemberResponse reports the admin promoted to keep the workspace administered, if any.
type RemoveMemberResponse struct {
	PromotedAdmin *MembershipResponse `json:"promotedAdmin,omitempty"`
}
