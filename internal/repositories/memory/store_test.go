package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seedWorkspace(t *testing.T, repos portsrepo.RepositoryProvider, id, creator string) {
	t.Helper()
	err := repos.WorkspaceRepo.CreateWorkspace(context.Background(),
		domain.Workspace{WorkspaceID: id, Name: id, Type: domain.WorkspacePublic, CreatorID: creator},
		domain.Membership{MembershipID: id + "-" + creator, WorkspaceID: id, UserID: creator, Role: domain.RoleAdmin, CreatedAt: t0})
	require.NoError(t, err)
}

func TestWithinWorkspaceTx_DiscardsWritesOnError(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	boom := errors.New("boom")
	err := repos.MembershipRepo.WithinWorkspaceTx(ctx, "ws1", func(tx portsrepo.MembershipTx) error {
		require.NoError(t, tx.InsertMembership(ctx, domain.Membership{MembershipID: "m2", UserID: "bob", Role: domain.RoleMember, CreatedAt: t0.Add(time.Minute)}))
		active, err := tx.ListActiveMemberships(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 2, "staged insert is visible inside the transaction")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.MembershipRepo.FindActiveMembership(ctx, "ws1", "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithinWorkspaceTx_CommitsAndRejectsDuplicates(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	err := repos.MembershipRepo.WithinWorkspaceTx(ctx, "ws1", func(tx portsrepo.MembershipTx) error {
		return tx.InsertMembership(ctx, domain.Membership{MembershipID: "m2", UserID: "bob", Role: domain.RoleMember, CreatedAt: t0})
	})
	require.NoError(t, err)

	err = repos.MembershipRepo.WithinWorkspaceTx(ctx, "ws1", func(tx portsrepo.MembershipTx) error {
		return tx.InsertMembership(ctx, domain.Membership{MembershipID: "m3", UserID: "bob", Role: domain.RoleMember, CreatedAt: t0})
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	ids, err := repos.MembershipRepo.ListActiveMemberIDs(ctx, "ws1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, ids)
}

func TestWithinWorkspaceTx_UnknownWorkspace(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	called := false
	err := repos.MembershipRepo.WithinWorkspaceTx(context.Background(), "missing", func(tx portsrepo.MembershipTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, called)
}

func TestWithinWorkspaceTx_SerializesPerWorkspace(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	inside, maxInside := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repos.MembershipRepo.WithinWorkspaceTx(ctx, "ws1", func(tx portsrepo.MembershipTx) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxInside)
}

func TestMessages_ListOrderFilterAndMutate(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	hello, bye := "Hello there", "bye"
	require.NoError(t, repos.MessageRepo.SaveMessage(ctx,
		domain.Message{MessageID: "m1", WorkspaceID: "ws1", SenderID: "alice", Text: &hello, MediaType: domain.MediaText, CreatedAt: t0},
		domain.ReadReceipt{MessageID: "m1", UserID: "alice", ReadAt: t0}))
	require.NoError(t, repos.MessageRepo.SaveMessage(ctx,
		domain.Message{MessageID: "m2", WorkspaceID: "ws1", SenderID: "alice", Text: &bye, MediaType: domain.MediaText, CreatedAt: t0.Add(time.Second)},
		domain.ReadReceipt{MessageID: "m2", UserID: "alice", ReadAt: t0}))

	all, total, err := repos.MessageRepo.ListMessages(ctx, "ws1", domain.MessageFilter{Window: domain.PageWindow{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "m2", all[0].MessageID, "newest first")

	found, total, err := repos.MessageRepo.ListMessages(ctx, "ws1", domain.MessageFilter{TextContains: "hello", Window: domain.PageWindow{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "m1", found[0].MessageID)

	rejected := errors.New("no")
	_, err = repos.MessageRepo.MutateMessage(ctx, "m1", func(m *domain.Message) error {
		m.IsDeleted = true
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	stored, err := repos.MessageRepo.FindMessageByID(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, stored.IsDeleted, "failed mutation leaves the row untouched")

	_, err = repos.MessageRepo.MutateMessage(ctx, "nope", func(m *domain.Message) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReadReceipts_IdempotentAndCounted(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	text := "hi"
	require.NoError(t, repos.MessageRepo.SaveMessage(ctx,
		domain.Message{MessageID: "m1", WorkspaceID: "ws1", SenderID: "alice", Text: &text, MediaType: domain.MediaText, CreatedAt: t0},
		domain.ReadReceipt{MessageID: "m1", UserID: "alice", ReadAt: t0}))

	unread, err := repos.ReadReceiptRepo.CountUnread(ctx, "ws1", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	inserted, err := repos.ReadReceiptRepo.SaveReadReceipt(ctx, domain.ReadReceipt{MessageID: "m1", UserID: "bob", ReadAt: t0})
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = repos.ReadReceiptRepo.SaveReadReceipt(ctx, domain.ReadReceipt{MessageID: "m1", UserID: "bob", ReadAt: t0})
	require.NoError(t, err)
	assert.False(t, inserted)

	unread, err = repos.ReadReceiptRepo.CountUnread(ctx, "ws1", "bob")
	require.NoError(t, err)
	assert.Zero(t, unread)

	readers, err := repos.ReadReceiptRepo.ListReaders(ctx, []string{"m1"})
	require.NoError(t, err)
	assert.Len(t, readers["m1"], 2)

	_, err = repos.ReadReceiptRepo.SaveReadReceipt(ctx, domain.ReadReceipt{MessageID: "ghost", UserID: "bob"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteWorkspace_Cascades(t *testing.T) {
	store := NewStore()
	repos := NewRepositoryProvider(store)
	seedWorkspace(t, repos, "ws1", "alice")
	ctx := context.Background()

	text := "hi"
	require.NoError(t, repos.MessageRepo.SaveMessage(ctx,
		domain.Message{MessageID: "m1", WorkspaceID: "ws1", SenderID: "alice", Text: &text, MediaType: domain.MediaText, CreatedAt: t0},
		domain.ReadReceipt{MessageID: "m1", UserID: "alice", ReadAt: t0}))

	require.NoError(t, repos.WorkspaceRepo.DeleteWorkspace(ctx, "ws1"))
	assert.Empty(t, store.memberships)
	assert.Empty(t, store.messages)
	assert.Empty(t, store.receipts)

	assert.ErrorIs(t, repos.WorkspaceRepo.DeleteWorkspace(ctx, "ws1"), apperrors.ErrNotFound)
}
