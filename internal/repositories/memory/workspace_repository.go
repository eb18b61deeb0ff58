package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
)

type workspaceRepository struct {
	store *Store
}

var _ portsrepo.WorkspaceRepositoryFacade = (*workspaceRepository)(nil)

func (r *workspaceRepository) FindWorkspaceByID(_ context.Context, workspaceID string) (*domain.Workspace, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.workspaces[workspaceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("workspace not found")
	}
	return &w, nil
}

func (r *workspaceRepository) ListWorkspacesByUserID(_ context.Context, userID string) ([]domain.WorkspaceSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summaries := []domain.WorkspaceSummary{}
	for _, m := range r.store.memberships {
		if m.UserID != userID || m.IsRemoved {
			continue
		}
		w, ok := r.store.workspaces[m.WorkspaceID]
		if !ok {
			continue
		}
		summaries = append(summaries, domain.WorkspaceSummary{
			Workspace: w,
			Role:      m.Role,
			JoinedAt:  m.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return r.store.order[summaries[i].WorkspaceID] > r.store.order[summaries[j].WorkspaceID]
	})
	return summaries, nil
}

func (r *workspaceRepository) ListPublicWorkspaces(_ context.Context, window domain.PageWindow) ([]domain.Workspace, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	public := []domain.Workspace{}
	for _, w := range r.store.workspaces {
		if w.Type == domain.WorkspacePublic {
			public = append(public, w)
		}
	}
	sort.Slice(public, func(i, j int) bool {
		return r.store.order[public[i].WorkspaceID] > r.store.order[public[j].WorkspaceID]
	})
	return pagination.Slice(public, window), len(public), nil
}

func (r *workspaceRepository) CreateWorkspace(_ context.Context, workspace domain.Workspace, creator domain.Membership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.workspaces[workspace.WorkspaceID]; exists {
		return apperrors.NewConflictError("workspace ID " + workspace.WorkspaceID + " already exists")
	}
	r.store.workspaces[workspace.WorkspaceID] = workspace
	r.store.nextSeq(workspace.WorkspaceID)
	r.store.memberships[creator.MembershipID] = creator
	r.store.nextSeq(creator.MembershipID)
	return nil
}

// UpdateWorkspace waits for any roster transaction on the workspace, so a type change
// never lands between a join's access check and its write.
func (r *workspaceRepository) UpdateWorkspace(_ context.Context, workspace domain.Workspace) error {
	lock := r.store.workspaceLock(workspace.WorkspaceID)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.workspaces[workspace.WorkspaceID]; !ok {
		return apperrors.NewNotFoundError("workspace not found")
	}
	r.store.workspaces[workspace.WorkspaceID] = workspace
	return nil
}

func (r *workspaceRepository) DeleteWorkspace(_ context.Context, workspaceID string) error {
	lock := r.store.workspaceLock(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.workspaces[workspaceID]; !ok {
		return apperrors.NewNotFoundError("workspace not found")
	}
	delete(r.store.workspaces, workspaceID)
	for id, m := range r.store.memberships {
		if m.WorkspaceID == workspaceID {
			delete(r.store.memberships, id)
		}
	}
	for id, msg := range r.store.messages {
		if msg.WorkspaceID != workspaceID {
			continue
		}
		delete(r.store.messages, id)
		for key := range r.store.receipts {
			if key.messageID == id {
				delete(r.store.receipts, key)
			}
		}
	}
	return nil
}
