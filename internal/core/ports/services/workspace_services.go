package services

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// FindWorkspaceByID retrieves a workspace. Private workspaces are only visible to members.
	FindWorkspaceByID(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves the workspaces the user belongs to, annotated with unread counts.
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error)

	// ListPublicWorkspaces retrieves public workspaces for discovery.
	ListPublicWorkspaces(ctx context.Context, window domain.PageWindow) ([]domain.Workspace, int, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace and makes the creator its first admin.
	CreateWorkspace(ctx context.Context, creatorUserID, name string, workspaceType domain.WorkspaceType, imageURL *string) (*domain.Workspace, error)

	// UpdateWorkspaceSettings changes name, type or image. Admins only.
	UpdateWorkspaceSettings(ctx context.Context, workspaceID, requestingUserID string, settings domain.WorkspaceSettings) (*domain.Workspace, error)

	// DeleteWorkspace removes a workspace. Creator or admins only.
	DeleteWorkspace(ctx context.Context, workspaceID, requestingUserID string) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
}
