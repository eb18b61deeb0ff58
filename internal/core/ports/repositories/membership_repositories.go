package repositories

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// MembershipTx is the view of one workspace's roster inside a workspace-scoped
// transaction. Every read made through it happens under the workspace lock, so a
// check followed by a write cannot interleave with another roster mutation.
type MembershipTx interface {
	// Workspace returns the workspace row as read under the lock. Settings changes made
	// by other callers are either fully visible or not at all.
	Workspace(ctx context.Context) (*domain.Workspace, error)

	// ListActiveMemberships returns the workspace's active memberships.
	ListActiveMemberships(ctx context.Context) ([]domain.Membership, error)

	// FindMembership returns the membership row for the user, active or removed.
	// Returns apperrors.ErrNotFound when the user never joined.
	FindMembership(ctx context.Context, userID string) (*domain.Membership, error)

	// FindMembershipByID returns a membership of this workspace by id.
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// InsertMembership stores a new membership row.
	InsertMembership(ctx context.Context, membership domain.Membership) error

	// UpdateMembership persists role and removal state of an existing row.
	UpdateMembership(ctx context.Context, membership domain.Membership) error
}

// MembershipReader defines lock-free roster reads.
type MembershipReader interface {
	// FindActiveMembership returns the user's active membership in the workspace, or
	// apperrors.ErrNotFound.
	FindActiveMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error)

	// ListMemberships returns one window of the roster ordered by creation time and the
	// total number of rows matching the filter.
	ListMemberships(ctx context.Context, workspaceID string, filter domain.MemberFilter) ([]domain.Membership, int, error)

	// ListActiveMemberIDs returns the user ids of all active members.
	ListActiveMemberIDs(ctx context.Context, workspaceID string) ([]string, error)
}

// MembershipRepositoryFacade combines roster reads with the transactional mutation entry point.
type MembershipRepositoryFacade interface {
	MembershipReader

	// WithinWorkspaceTx runs fn holding the workspace's roster lock. Writes made through
	// the MembershipTx commit only if fn returns nil; otherwise nothing is changed.
	WithinWorkspaceTx(ctx context.Context, workspaceID string, fn func(tx MembershipTx) error) error
}
