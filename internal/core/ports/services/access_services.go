package services

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// AccessPolicySvc is the single gatekeeper every workspace operation goes through.
type AccessPolicySvc interface {
	// AuthorizeUserAction loads the workspace and the actor's active membership and checks
	// the capability. On success the resolved subject is returned for reuse by the caller.
	// Returns apperrors.ErrNotFound when the workspace does not exist and
	// apperrors.ErrForbidden when the capability is denied.
	AuthorizeUserAction(ctx context.Context, actorID, workspaceID string, capability domain.Capability) (*domain.AccessSubject, error)
}
