package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
)

// accessRule decides one capability for a resolved subject.
type accessRule func(subject domain.AccessSubject) error

func requireActiveAdmin(subject domain.AccessSubject) error {
	if !subject.Membership.IsActiveAdmin() {
		return apperrors.NewForbiddenError("requires an active admin membership")
	}
	return nil
}

func requireActiveMember(subject domain.AccessSubject) error {
	if !subject.Membership.IsActive() {
		return apperrors.NewForbiddenError("requires an active membership")
	}
	return nil
}

func isCreator(subject domain.AccessSubject) bool {
	return subject.Workspace != nil && subject.Workspace.CreatorID == subject.ActorID
}

// accessPolicy maps every capability to the rule that grants it. Adding a capability
// means adding a row here; call sites only name the capability.
var accessPolicy = map[domain.Capability]accessRule{
	domain.CapJoinPrivate: requireActiveAdmin,
	domain.CapJoinPublic: func(subject domain.AccessSubject) error {
		if subject.TargetUserID == subject.ActorID || subject.Membership.IsActive() {
			return nil
		}
		return apperrors.NewForbiddenError("only members can add others to a workspace")
	},
	domain.CapManageMembers: requireActiveAdmin,
	domain.CapRemoveMember: func(subject domain.AccessSubject) error {
		if subject.TargetUserID == subject.ActorID {
			return nil
		}
		if isCreator(subject) && subject.Membership.IsActive() {
			return nil
		}
		// Kicking by non-creator admins is not offered.
		return apperrors.NewForbiddenError("only the workspace creator can remove other members")
	},
	domain.CapSendMessage:  requireActiveMember,
	domain.CapReadMessages: requireActiveMember,
	domain.CapDeleteWorkspace: func(subject domain.AccessSubject) error {
		if isCreator(subject) || subject.Membership.IsActiveAdmin() {
			return nil
		}
		return apperrors.NewForbiddenError("only the creator or an admin can delete a workspace")
	},
	domain.CapUpdateWorkspaceSettings: requireActiveAdmin,
}

// Authorize is the single access decision for workspace operations. It returns nil when
// the subject holds the capability and an apperrors.ErrForbidden error otherwise.
func Authorize(subject domain.AccessSubject, capability domain.Capability) error {
	rule, ok := accessPolicy[capability]
	if !ok {
		return apperrors.NewForbiddenError("unknown capability " + string(capability))
	}
	if subject.Workspace == nil {
		return apperrors.NewForbiddenError("workspace not resolved")
	}
	if subject.Membership != nil && subject.Membership.WorkspaceID != subject.Workspace.WorkspaceID {
		return apperrors.NewForbiddenError("membership belongs to another workspace")
	}
	return rule(subject)
}

// accessPolicyService resolves subjects from storage and applies Authorize.
type accessPolicyService struct {
	BaseService
	workspaceRepo  portsrepo.WorkspaceReader
	membershipRepo portsrepo.MembershipReader
}

// NewAccessPolicyService creates the access policy gatekeeper.
func NewAccessPolicyService(workspaceRepo portsrepo.WorkspaceReader, membershipRepo portsrepo.MembershipReader) portssvc.AccessPolicySvc {
	return &accessPolicyService{
		workspaceRepo:  workspaceRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.AccessPolicySvc = (*accessPolicyService)(nil)

func (s *accessPolicyService) AuthorizeUserAction(ctx context.Context, actorID, workspaceID string, capability domain.Capability) (*domain.AccessSubject, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load workspace for authorization",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	membership, err := s.membershipRepo.FindActiveMembership(ctx, workspaceID, actorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load membership for authorization",
				slog.String("workspace_id", workspaceID),
				slog.String("user_id", actorID))
			return nil, err
		}
		membership = nil
	}

	subject := domain.AccessSubject{
		ActorID:    actorID,
		Workspace:  workspace,
		Membership: membership,
	}
	if err := Authorize(subject, capability); err != nil {
		s.LogWarn(ctx, err, "Capability denied",
			slog.String("workspace_id", workspaceID),
			slog.String("user_id", actorID),
			slog.String("capability", string(capability)))
		return nil, err
	}
	return &subject, nil
}
