package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	"github.com/SscSPs/workspace_chat_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	ws := &domain.Workspace{WorkspaceID: "ws1", CreatorID: "creator", Type: domain.WorkspacePublic}
	admin := &domain.Membership{WorkspaceID: "ws1", UserID: "admin", Role: domain.RoleAdmin}
	member := &domain.Membership{WorkspaceID: "ws1", UserID: "member", Role: domain.RoleMember}
	removedAdmin := &domain.Membership{WorkspaceID: "ws1", UserID: "gone", Role: domain.RoleAdmin, IsRemoved: true}
	creatorAdmin := &domain.Membership{WorkspaceID: "ws1", UserID: "creator", Role: domain.RoleAdmin}
	foreignAdmin := &domain.Membership{WorkspaceID: "ws2", UserID: "admin", Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		subject    domain.AccessSubject
		capability domain.Capability
		allowed    bool
	}{
		{"admin joins others to private", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin, TargetUserID: "x"}, domain.CapJoinPrivate, true},
		{"member cannot add to private", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member, TargetUserID: "x"}, domain.CapJoinPrivate, false},
		{"outsider cannot self-join private", domain.AccessSubject{ActorID: "x", Workspace: ws, TargetUserID: "x"}, domain.CapJoinPrivate, false},
		{"outsider self-joins public", domain.AccessSubject{ActorID: "x", Workspace: ws, TargetUserID: "x"}, domain.CapJoinPublic, true},
		{"member adds to public", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member, TargetUserID: "x"}, domain.CapJoinPublic, true},
		{"outsider cannot add others to public", domain.AccessSubject{ActorID: "x", Workspace: ws, TargetUserID: "y"}, domain.CapJoinPublic, false},
		{"admin manages members", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin}, domain.CapManageMembers, true},
		{"removed admin cannot manage", domain.AccessSubject{ActorID: "gone", Workspace: ws, Membership: removedAdmin}, domain.CapManageMembers, false},
		{"member cannot manage", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member}, domain.CapManageMembers, false},
		{"self leave", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member, TargetUserID: "member"}, domain.CapRemoveMember, true},
		{"creator kicks", domain.AccessSubject{ActorID: "creator", Workspace: ws, Membership: creatorAdmin, TargetUserID: "member"}, domain.CapRemoveMember, true},
		{"non-creator admin cannot kick", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin, TargetUserID: "member"}, domain.CapRemoveMember, false},
		{"departed creator cannot kick", domain.AccessSubject{ActorID: "creator", Workspace: ws, TargetUserID: "member"}, domain.CapRemoveMember, false},
		{"member sends", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member}, domain.CapSendMessage, true},
		{"outsider cannot send", domain.AccessSubject{ActorID: "x", Workspace: ws}, domain.CapSendMessage, false},
		{"removed member cannot read", domain.AccessSubject{ActorID: "gone", Workspace: ws, Membership: removedAdmin}, domain.CapReadMessages, false},
		{"creator deletes without membership", domain.AccessSubject{ActorID: "creator", Workspace: ws}, domain.CapDeleteWorkspace, true},
		{"admin deletes", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin}, domain.CapDeleteWorkspace, true},
		{"member cannot delete", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member}, domain.CapDeleteWorkspace, false},
		{"admin updates settings", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin}, domain.CapUpdateWorkspaceSettings, true},
		{"member cannot update settings", domain.AccessSubject{ActorID: "member", Workspace: ws, Membership: member}, domain.CapUpdateWorkspaceSettings, false},
		{"membership of another workspace", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: foreignAdmin}, domain.CapManageMembers, false},
		{"unresolved workspace", domain.AccessSubject{ActorID: "admin", Membership: admin}, domain.CapReadMessages, false},
		{"unknown capability", domain.AccessSubject{ActorID: "admin", Workspace: ws, Membership: admin}, domain.Capability("launch-rockets"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.Authorize(tt.subject, tt.capability)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}
}

func TestAuthorizeUserAction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wsID := env.workspace(t, "alice", domain.WorkspacePrivate, "bob")

	subject, err := env.access.AuthorizeUserAction(ctx, "bob", wsID, domain.CapReadMessages)
	require.NoError(t, err)
	require.NotNil(t, subject.Membership)
	assert.Equal(t, domain.RoleMember, subject.Membership.Role)
	assert.Equal(t, wsID, subject.Workspace.WorkspaceID)

	_, err = env.access.AuthorizeUserAction(ctx, "bob", wsID, domain.CapManageMembers)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.access.AuthorizeUserAction(ctx, "mallory", wsID, domain.CapReadMessages)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.access.AuthorizeUserAction(ctx, "alice", "missing", domain.CapReadMessages)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
