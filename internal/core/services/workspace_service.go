package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	access        portssvc.AccessPolicySvc
	ledger        portssvc.ReadLedgerSvcFacade
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	access portssvc.AccessPolicySvc,
	ledger portssvc.ReadLedgerSvcFacade,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		access:        access,
		ledger:        ledger,
	}
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// CreateWorkspace creates a new workspace with the creator as its first admin
func (s *workspaceService) CreateWorkspace(ctx context.Context, creatorUserID, name string, workspaceType domain.WorkspaceType, imageURL *string) (*domain.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("workspace name is required")
	}
	if workspaceType == "" {
		workspaceType = domain.WorkspacePublic
	}
	if !workspaceType.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown workspace type " + string(workspaceType))
	}

	now := s.now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        name,
		Type:        workspaceType,
		CreatorID:   creatorUserID,
		ImageURL:    imageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	creator := domain.Membership{
		MembershipID: uuid.NewString(),
		WorkspaceID:  workspace.WorkspaceID,
		UserID:       creatorUserID,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.workspaceRepo.CreateWorkspace(ctx, workspace, creator); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID),
		slog.String("type", string(workspaceType)))
	return &workspace, nil
}

// FindWorkspaceByID retrieves a workspace. A private workspace is reported as not found to
// non-members so its existence is not revealed.
func (s *workspaceService) FindWorkspaceByID(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace by ID",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}
	if workspace.Type == domain.WorkspacePublic {
		return workspace, nil
	}

	if _, err := s.access.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.CapReadMessages); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.NewNotFoundError("workspace not found")
		}
		return nil, err
	}
	return workspace, nil
}

// ListUserWorkspaces retrieves the caller's workspaces with their unread counts
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error) {
	summaries, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if len(summaries) == 0 {
		return []domain.WorkspaceSummary{}, nil
	}

	ids := make([]string, len(summaries))
	for i := range summaries {
		ids[i] = summaries[i].WorkspaceID
	}
	counts, err := s.ledger.UnreadCounts(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].UnreadCount = counts[summaries[i].WorkspaceID]
	}

	s.LogDebug(ctx, "Workspaces listed successfully",
		slog.Int("count", len(summaries)),
		slog.String("user_id", userID))
	return summaries, nil
}

func (s *workspaceService) ListPublicWorkspaces(ctx context.Context, window domain.PageWindow) ([]domain.Workspace, int, error) {
	window, err := pagination.Normalize(window)
	if err != nil {
		return nil, 0, err
	}
	workspaces, total, err := s.workspaceRepo.ListPublicWorkspaces(ctx, window)
	if err != nil {
		s.LogError(ctx, err, "Failed to list public workspaces")
		return nil, 0, err
	}
	if workspaces == nil {
		workspaces = []domain.Workspace{}
	}
	return workspaces, total, nil
}

// UpdateWorkspaceSettings applies the non-nil settings. Admins only.
func (s *workspaceService) UpdateWorkspaceSettings(ctx context.Context, workspaceID, requestingUserID string, settings domain.WorkspaceSettings) (*domain.Workspace, error) {
	subject, err := s.access.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.CapUpdateWorkspaceSettings)
	if err != nil {
		return nil, err
	}

	workspace := *subject.Workspace
	if settings.Name != nil {
		name := strings.TrimSpace(*settings.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("workspace name must not be empty")
		}
		workspace.Name = name
	}
	if settings.Type != nil {
		if !settings.Type.IsValid() {
			return nil, apperrors.NewValidationFailedError("unknown workspace type " + string(*settings.Type))
		}
		workspace.Type = *settings.Type
	}
	if settings.ImageURL != nil {
		if strings.TrimSpace(*settings.ImageURL) == "" {
			workspace.ImageURL = nil
		} else {
			workspace.ImageURL = settings.ImageURL
		}
	}
	workspace.LastUpdatedAt = s.now()

	if err := s.workspaceRepo.UpdateWorkspace(ctx, workspace); err != nil {
		s.LogError(ctx, err, "Failed to update workspace",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace settings updated",
		slog.String("workspace_id", workspaceID),
		slog.String("updated_by", requestingUserID))
	return &workspace, nil
}

// DeleteWorkspace removes a workspace. Creator or admins only.
func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID, requestingUserID string) error {
	if _, err := s.access.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.CapDeleteWorkspace); err != nil {
		return err
	}
	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace",
			slog.String("workspace_id", workspaceID))
		return err
	}
	s.LogInfo(ctx, "Workspace deleted",
		slog.String("workspace_id", workspaceID),
		slog.String("deleted_by", requestingUserID))
	return nil
}
