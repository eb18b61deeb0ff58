package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
)

type membershipRepository struct {
	store *Store
}

var _ portsrepo.MembershipRepositoryFacade = (*membershipRepository)(nil)

func (r *membershipRepository) FindActiveMembership(_ context.Context, workspaceID, userID string) (*domain.Membership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.memberships {
		if m.WorkspaceID == workspaceID && m.UserID == userID && !m.IsRemoved {
			return &m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no active membership")
}

func (r *membershipRepository) ListMemberships(_ context.Context, workspaceID string, filter domain.MemberFilter) ([]domain.Membership, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := []domain.Membership{}
	for _, m := range r.store.memberships {
		if m.WorkspaceID != workspaceID {
			continue
		}
		if m.IsRemoved && !filter.IncludeRemoved {
			continue
		}
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool {
		return r.store.order[rows[i].MembershipID] < r.store.order[rows[j].MembershipID]
	})
	return pagination.Slice(rows, filter.Window), len(rows), nil
}

func (r *membershipRepository) ListActiveMemberIDs(_ context.Context, workspaceID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := []string{}
	for _, m := range r.store.memberships {
		if m.WorkspaceID == workspaceID && !m.IsRemoved {
			ids = append(ids, m.UserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// WithinWorkspaceTx holds the workspace's roster lock for the duration of fn and applies
// the staged writes only when fn succeeds.
func (r *membershipRepository) WithinWorkspaceTx(ctx context.Context, workspaceID string, fn func(tx portsrepo.MembershipTx) error) error {
	lock := r.store.workspaceLock(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.RLock()
	_, exists := r.store.workspaces[workspaceID]
	r.store.mu.RUnlock()
	if !exists {
		return apperrors.NewNotFoundError("workspace not found")
	}

	tx := &membershipTx{
		store:       r.store,
		workspaceID: workspaceID,
		staged:      make(map[string]domain.Membership),
	}
	if err := fn(tx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.workspaces[workspaceID]; !ok {
		return apperrors.NewNotFoundError("workspace not found")
	}
	for _, id := range tx.inserted {
		r.store.nextSeq(id)
	}
	for id, m := range tx.staged {
		r.store.memberships[id] = m
	}
	return nil
}

// membershipTx reads through to the store and buffers writes until commit.
type membershipTx struct {
	store       *Store
	workspaceID string
	staged      map[string]domain.Membership
	inserted    []string
}

var _ portsrepo.MembershipTx = (*membershipTx)(nil)

// snapshot merges committed rows of the workspace with staged writes.
func (t *membershipTx) snapshot() []domain.Membership {
	t.store.mu.RLock()
	rows := make(map[string]domain.Membership)
	for id, m := range t.store.memberships {
		if m.WorkspaceID == t.workspaceID {
			rows[id] = m
		}
	}
	t.store.mu.RUnlock()

	for id, m := range t.staged {
		rows[id] = m
	}
	out := make([]domain.Membership, 0, len(rows))
	for _, m := range rows {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MembershipID < out[j].MembershipID
	})
	return out
}

func (t *membershipTx) Workspace(_ context.Context) (*domain.Workspace, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	w, ok := t.store.workspaces[t.workspaceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("workspace not found")
	}
	return &w, nil
}

func (t *membershipTx) ListActiveMemberships(_ context.Context) ([]domain.Membership, error) {
	active := []domain.Membership{}
	for _, m := range t.snapshot() {
		if !m.IsRemoved {
			active = append(active, m)
		}
	}
	return active, nil
}

func (t *membershipTx) FindMembership(_ context.Context, userID string) (*domain.Membership, error) {
	for _, m := range t.snapshot() {
		if m.UserID == userID {
			return &m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("membership not found")
}

func (t *membershipTx) FindMembershipByID(_ context.Context, membershipID string) (*domain.Membership, error) {
	for _, m := range t.snapshot() {
		if m.MembershipID == membershipID {
			return &m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("membership not found")
}

func (t *membershipTx) InsertMembership(_ context.Context, membership domain.Membership) error {
	for _, m := range t.snapshot() {
		if m.UserID == membership.UserID || m.MembershipID == membership.MembershipID {
			return apperrors.NewConflictError("membership already exists for user")
		}
	}
	membership.WorkspaceID = t.workspaceID
	t.staged[membership.MembershipID] = membership
	t.inserted = append(t.inserted, membership.MembershipID)
	return nil
}

func (t *membershipTx) UpdateMembership(_ context.Context, membership domain.Membership) error {
	if _, err := t.FindMembershipByID(context.Background(), membership.MembershipID); err != nil {
		return err
	}
	membership.WorkspaceID = t.workspaceID
	t.staged[membership.MembershipID] = membership
	return nil
}
