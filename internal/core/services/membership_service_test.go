package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_chat_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMember_PublicWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic)

	joined, err := env.members.AddMember(ctx, wsID, "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", joined.UserID)
	assert.Equal(t, domain.RoleMember, joined.Role)

	_, err = env.members.AddMember(ctx, wsID, "bob", "carol")
	require.NoError(t, err, "any member may add others to a public workspace")

	_, err = env.members.AddMember(ctx, wsID, "mallory", "dave")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.members.AddMember(ctx, wsID, "alice", "bob")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Contains(t, env.events.types(), domain.EventMemberJoined)
}

func TestAddMember_PrivateWorkspaceRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePrivate, "bob")

	_, err := env.members.AddMember(ctx, wsID, "carol", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.members.AddMember(ctx, wsID, "bob", "carol")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.members.AddMember(ctx, wsID, "alice", "carol")
	require.NoError(t, err)

	_, err = env.members.AddMember(ctx, "missing", "alice", "carol")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// beforeLockRepository runs hook right before a roster transaction takes the lock.
type beforeLockRepository struct {
	portsrepo.MembershipRepositoryFacade
	hook func()
}

func (r *beforeLockRepository) WithinWorkspaceTx(ctx context.Context, workspaceID string, fn func(tx portsrepo.MembershipTx) error) error {
	r.hook()
	return r.MembershipRepositoryFacade.WithinWorkspaceTx(ctx, workspaceID, fn)
}

func TestAddMember_UsesWorkspaceTypeReadUnderLock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic)

	private := domain.WorkspacePrivate
	repo := &beforeLockRepository{
		MembershipRepositoryFacade: env.repos.MembershipRepo,
		hook: func() {
			_, err := env.workspaces.UpdateWorkspaceSettings(ctx, wsID, "alice", domain.WorkspaceSettings{Type: &private})
			require.NoError(t, err)
		},
	}
	members := services.NewMembershipService(repo, env.access)

	_, err := members.AddMember(ctx, wsID, "bob", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "self-join must see the workspace turned private")

	_, err = env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddMember_ReactivatesAsMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")

	original, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.NoError(t, err)
	promoted, err := env.members.ToggleRole(ctx, wsID, "alice", original.MembershipID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, promoted.Role)

	_, err = env.members.RemoveMember(ctx, wsID, "bob", "bob")
	require.NoError(t, err)
	_, err = env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	back, err := env.members.AddMember(ctx, wsID, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, original.MembershipID, back.MembershipID, "the same row is reused")
	assert.Equal(t, domain.RoleMember, back.Role)
	assert.False(t, back.IsRemoved)

	all, total, err := env.members.ListMembers(ctx, wsID, "alice", domain.MemberFilter{IncludeRemoved: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestRemoveMember_LastAdminHandsOff(t *testing.T) {
	var candidates int
	env := newTestEnv(t, services.WithSuccessorPicker(func(n int) int {
		candidates = n
		return 0
	}))
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")

	promoted, err := env.members.RemoveMember(ctx, wsID, "alice", "alice")
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, 1, candidates)
	assert.Equal(t, "bob", promoted.UserID)
	assert.Equal(t, domain.RoleAdmin, env.role(t, wsID, "bob"))
	assert.Equal(t, 1, env.activeAdmins(t, wsID))

	types := env.events.types()
	assert.Contains(t, types, domain.EventRoleChanged)
	assert.Equal(t, domain.EventMemberLeft, types[len(types)-1])

	_, err = env.members.RemoveMember(ctx, wsID, "bob", "bob")
	assert.ErrorIs(t, err, apperrors.ErrConflict, "the last member cannot leave")
	assert.Equal(t, domain.RoleAdmin, env.role(t, wsID, "bob"))
}

func TestRemoveMember_NoHandoffWhileAnotherAdminRemains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob", "carol")

	bob, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.NoError(t, err)
	_, err = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
	require.NoError(t, err)

	promoted, err := env.members.RemoveMember(ctx, wsID, "alice", "alice")
	require.NoError(t, err)
	assert.Nil(t, promoted)
	assert.Equal(t, domain.RoleMember, env.role(t, wsID, "carol"))
	assert.Equal(t, 1, env.activeAdmins(t, wsID))
}

func TestRemoveMember_KickRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob", "carol")

	bob, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.NoError(t, err)
	_, err = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
	require.NoError(t, err)

	_, err = env.members.RemoveMember(ctx, wsID, "bob", "carol")
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "admins other than the creator cannot kick")

	_, err = env.members.RemoveMember(ctx, wsID, "carol", "bob")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.members.RemoveMember(ctx, wsID, "alice", "dave")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.members.RemoveMember(ctx, wsID, "alice", "carol")
	require.NoError(t, err)
	_, err = env.members.RemoveMember(ctx, wsID, "alice", "carol")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "already removed")
}

func TestRemoveMember_ConcurrentAdminsKeepOneAdmin(t *testing.T) {
	t.Run("two admins alone", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")
		bob, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
		require.NoError(t, err)
		_, err = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
		require.NoError(t, err)

		errs := leaveConcurrently(env, wsID, "alice", "bob")

		failures := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, apperrors.ErrConflict)
				failures++
			}
		}
		assert.Equal(t, 1, failures, "exactly one of the two may leave")
		assert.Equal(t, 1, env.activeAdmins(t, wsID))
	})

	t.Run("two admins and a member", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob", "carol")
		bob, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
		require.NoError(t, err)
		_, err = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
		require.NoError(t, err)

		for _, err := range leaveConcurrently(env, wsID, "alice", "bob") {
			assert.NoError(t, err)
		}
		assert.Equal(t, domain.RoleAdmin, env.role(t, wsID, "carol"))
		assert.Equal(t, 1, env.activeAdmins(t, wsID))
	})
}

func leaveConcurrently(env *testEnv, workspaceID string, users ...string) []error {
	errs := make([]error, len(users))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, u := range users {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			<-start
			_, errs[i] = env.members.RemoveMember(context.Background(), workspaceID, u, u)
		}(i, u)
	}
	close(start)
	wg.Wait()
	return errs
}

// twoAdmins builds a workspace where alice and bob are admins and carol is a member.
func twoAdmins(t *testing.T, env *testEnv) (wsID string, alice, bob *domain.Membership) {
	t.Helper()
	ctx := context.Background()
	wsID = env.workspace(t, "alice", domain.WorkspacePublic, "bob", "carol")
	alice, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "alice")
	require.NoError(t, err)
	bob, err = env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.NoError(t, err)
	_, err = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
	require.NoError(t, err)
	return wsID, alice, bob
}

// race runs every fn at once and waits for all of them.
func race(fns ...func()) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, fn := range fns {
		wg.Add(1)
		go func(fn func()) {
			defer wg.Done()
			<-start
			fn()
		}(fn)
	}
	close(start)
	wg.Wait()
}

func TestToggleRole_ConcurrentDemotionsKeepOneAdmin(t *testing.T) {
	for i := 0; i < 50; i++ {
		env := newTestEnv(t)
		ctx := context.Background()
		wsID, alice, bob := twoAdmins(t, env)

		var errAlice, errBob error
		race(
			func() { _, errAlice = env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID) },
			func() { _, errBob = env.members.ToggleRole(ctx, wsID, "bob", alice.MembershipID) },
		)

		require.True(t, (errAlice == nil) != (errBob == nil), "exactly one demotion may win")
		if errAlice != nil {
			assert.ErrorIs(t, errAlice, apperrors.ErrForbidden)
		} else {
			assert.ErrorIs(t, errBob, apperrors.ErrForbidden)
		}
		assert.Equal(t, 1, env.activeAdmins(t, wsID))
	}
}

func TestToggleRole_DemotionRacingLeaveKeepsAnAdmin(t *testing.T) {
	for i := 0; i < 50; i++ {
		env := newTestEnv(t, services.WithSuccessorPicker(func(n int) int { return 0 }))
		ctx := context.Background()
		wsID, alice, _ := twoAdmins(t, env)

		var demoteErr, leaveErr error
		race(
			func() { _, demoteErr = env.members.ToggleRole(ctx, wsID, "bob", alice.MembershipID) },
			func() { _, leaveErr = env.members.RemoveMember(ctx, wsID, "bob", "bob") },
		)

		require.NoError(t, leaveErr, "leaving is always allowed while others remain")
		if demoteErr != nil {
			assert.ErrorIs(t, demoteErr, apperrors.ErrForbidden, "a departed admin cannot demote")
		}
		assert.GreaterOrEqual(t, env.activeAdmins(t, wsID), 1)
	}
}

func TestToggleRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")

	alice, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "alice")
	require.NoError(t, err)
	bob, err := env.repos.MembershipRepo.FindActiveMembership(ctx, wsID, "bob")
	require.NoError(t, err)

	_, err = env.members.ToggleRole(ctx, wsID, "alice", alice.MembershipID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "cannot remove last admin")

	_, err = env.members.ToggleRole(ctx, wsID, "bob", bob.MembershipID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "members cannot change roles")

	_, err = env.members.ToggleRole(ctx, wsID, "alice", "no-such-membership")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	updated, err := env.members.ToggleRole(ctx, wsID, "alice", bob.MembershipID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	updated, err = env.members.ToggleRole(ctx, wsID, "bob", alice.MembershipID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, updated.Role)
	assert.Equal(t, 1, env.activeAdmins(t, wsID))
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePrivate, "bob", "carol")

	_, err := env.members.RemoveMember(ctx, wsID, "carol", "carol")
	require.NoError(t, err)

	active, total, err := env.members.ListMembers(ctx, wsID, "bob", domain.MemberFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, active, 2)

	page, total, err := env.members.ListMembers(ctx, wsID, "bob", domain.MemberFilter{
		IncludeRemoved: true,
		Window:         domain.PageWindow{Offset: 2, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	_, _, err = env.members.ListMembers(ctx, wsID, "carol", domain.MemberFilter{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = env.members.ListMembers(ctx, wsID, "bob", domain.MemberFilter{Window: domain.PageWindow{Offset: -1}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
