package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRead_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")
	msg := env.send(t, wsID, "alice", "hello")

	inserted, err := env.ledger.RecordRead(ctx, msg.MessageID, "bob")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = env.ledger.RecordRead(ctx, msg.MessageID, "bob")
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = env.ledger.RecordRead(ctx, "missing", "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkRead_DecrementsUnread(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")
	otherWS := env.workspace(t, "carol", domain.WorkspacePublic, "bob")
	first := env.send(t, wsID, "alice", "one")
	second := env.send(t, wsID, "alice", "two")
	foreign := env.send(t, otherWS, "carol", "elsewhere")

	unread, err := env.ledger.UnreadCount(ctx, wsID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	added, err := env.ledger.MarkRead(ctx, wsID, "bob", []string{first.MessageID})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	unread, err = env.ledger.UnreadCount(ctx, wsID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	added, err = env.ledger.MarkRead(ctx, wsID, "bob", []string{first.MessageID, second.MessageID})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "repeat reads are not counted")

	_, err = env.ledger.MarkRead(ctx, wsID, "bob", []string{foreign.MessageID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.ledger.MarkRead(ctx, wsID, "mallory", []string{first.MessageID})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	counts, err := env.ledger.UnreadCounts(ctx, "bob", []string{wsID, otherWS, "unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{wsID: 0, otherWS: 1, "unknown": 0}, counts)
}

func TestMarkRead_RejectsWholeBatchOnForeignMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")
	otherWS := env.workspace(t, "carol", domain.WorkspacePublic)
	first := env.send(t, wsID, "alice", "one")
	foreign := env.send(t, otherWS, "carol", "elsewhere")

	added, err := env.ledger.MarkRead(ctx, wsID, "bob", []string{first.MessageID, foreign.MessageID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, added)

	_, err = env.ledger.MarkRead(ctx, wsID, "bob", []string{first.MessageID, "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	unread, err := env.ledger.UnreadCount(ctx, wsID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, unread, "no receipt is written for a rejected batch")
}

func TestIsFullyRead_TracksActiveRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePublic, "bob")
	msg := env.send(t, wsID, "alice", "hello")

	memberIDs, err := env.repos.MembershipRepo.ListActiveMemberIDs(ctx, wsID)
	require.NoError(t, err)
	full, err := env.ledger.IsFullyRead(ctx, *msg, memberIDs)
	require.NoError(t, err)
	assert.False(t, full)

	_, err = env.ledger.RecordRead(ctx, msg.MessageID, "bob")
	require.NoError(t, err)
	full, err = env.ledger.IsFullyRead(ctx, *msg, memberIDs)
	require.NoError(t, err)
	assert.True(t, full)

	_, err = env.members.AddMember(ctx, wsID, "carol", "")
	require.NoError(t, err)
	memberIDs, err = env.repos.MembershipRepo.ListActiveMemberIDs(ctx, wsID)
	require.NoError(t, err)
	full, err = env.ledger.IsFullyRead(ctx, *msg, memberIDs)
	require.NoError(t, err)
	assert.False(t, full, "a newcomer has not read it")

	_, err = env.members.RemoveMember(ctx, wsID, "carol", "carol")
	require.NoError(t, err)
	memberIDs, err = env.repos.MembershipRepo.ListActiveMemberIDs(ctx, wsID)
	require.NoError(t, err)
	full, err = env.ledger.IsFullyRead(ctx, *msg, memberIDs)
	require.NoError(t, err)
	assert.True(t, full, "departed members no longer count")
}
