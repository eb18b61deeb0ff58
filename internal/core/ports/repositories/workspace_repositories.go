package repositories

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves the workspaces the user holds an active membership in,
	// together with that membership.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error)

	// ListPublicWorkspaces retrieves public workspaces newest first plus the total count.
	ListPublicWorkspaces(ctx context.Context, window domain.PageWindow) ([]domain.Workspace, int, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// CreateWorkspace persists a workspace and its creator's admin membership in one transaction.
	CreateWorkspace(ctx context.Context, workspace domain.Workspace, creator domain.Membership) error

	// UpdateWorkspace persists changed settings.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	// DeleteWorkspace removes the workspace; memberships, messages and receipts go with it.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
