package services

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// MembershipSvcFacade defines operations for managing a workspace roster
type MembershipSvcFacade interface {
	// AddMember adds targetUserID to the workspace, reactivating an earlier membership if one exists.
	AddMember(ctx context.Context, workspaceID, actorID, targetUserID string) (*domain.Membership, error)

	// RemoveMember soft-deletes the target's membership. The actor must be the target or the
	// workspace creator. When the target is the last admin another member is promoted in the
	// same transaction; the promoted membership is returned (nil when no handoff was needed).
	RemoveMember(ctx context.Context, workspaceID, actorID, targetUserID string) (*domain.Membership, error)

	// ToggleRole flips a membership between admin and member. Admins only.
	ToggleRole(ctx context.Context, workspaceID, actorID, membershipID string) (*domain.Membership, error)

	// ListMembers returns one window of the roster and the total count.
	ListMembers(ctx context.Context, workspaceID, actorID string, filter domain.MemberFilter) ([]domain.Membership, int, error)
}
