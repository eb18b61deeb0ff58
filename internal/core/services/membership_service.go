package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// membershipService implements the MembershipSvcFacade interface. Every roster mutation
// runs inside MembershipRepositoryFacade.WithinWorkspaceTx so the access check, the
// admin-count check and the write all see the same locked roster.
type membershipService struct {
	BaseService
	membershipRepo portsrepo.MembershipRepositoryFacade
	access         portssvc.AccessPolicySvc
	pickSuccessor  successorPicker
}

// MembershipServiceOption is a functional option for configuring the membership service
type MembershipServiceOption func(*membershipService)

// WithSuccessorPicker overrides the uniform random choice of a new admin.
func WithSuccessorPicker(pick func(n int) int) MembershipServiceOption {
	return func(s *membershipService) {
		s.pickSuccessor = pick
	}
}

// WithMembershipPublisher sets where roster events are sent after commit.
func WithMembershipPublisher(publisher portssvc.EventPublisher) MembershipServiceOption {
	return func(s *membershipService) {
		s.Publisher = publisher
	}
}

// NewMembershipService creates a new membership service with the provided options
func NewMembershipService(
	membershipRepo portsrepo.MembershipRepositoryFacade,
	access portssvc.AccessPolicySvc,
	options ...MembershipServiceOption,
) portssvc.MembershipSvcFacade {
	svc := &membershipService{
		membershipRepo: membershipRepo,
		access:         access,
		pickSuccessor:  randomSuccessor,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

// activeMembershipOf looks up userID's row inside the transaction and returns it only
// when it is active. A missing row is not an error.
func activeMembershipOf(ctx context.Context, tx portsrepo.MembershipTx, userID string) (*domain.Membership, error) {
	m, err := tx.FindMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !m.IsActive() {
		return nil, nil
	}
	return m, nil
}

// lockedSubject reads the workspace and the actor's active membership through tx, so
// the access decision uses the settings and roster that the write will see.
func lockedSubject(ctx context.Context, tx portsrepo.MembershipTx, actorID string) (*domain.Workspace, *domain.Membership, error) {
	workspace, err := tx.Workspace(ctx)
	if err != nil {
		return nil, nil, err
	}
	actorMembership, err := activeMembershipOf(ctx, tx, actorID)
	if err != nil {
		return nil, nil, err
	}
	return workspace, actorMembership, nil
}

func (s *membershipService) AddMember(ctx context.Context, workspaceID, actorID, targetUserID string) (*domain.Membership, error) {
	if targetUserID == "" {
		targetUserID = actorID
	}

	var added domain.Membership
	err := s.membershipRepo.WithinWorkspaceTx(ctx, workspaceID, func(tx portsrepo.MembershipTx) error {
		workspace, actorMembership, err := lockedSubject(ctx, tx, actorID)
		if err != nil {
			return err
		}
		capability := domain.CapJoinPublic
		if workspace.Type == domain.WorkspacePrivate {
			capability = domain.CapJoinPrivate
		}
		subject := domain.AccessSubject{
			ActorID:      actorID,
			Workspace:    workspace,
			Membership:   actorMembership,
			TargetUserID: targetUserID,
		}
		if err := Authorize(subject, capability); err != nil {
			return err
		}

		now := s.now()
		existing, err := tx.FindMembership(ctx, targetUserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing == nil {
			added = domain.Membership{
				MembershipID: uuid.NewString(),
				WorkspaceID:  workspaceID,
				UserID:       targetUserID,
				Role:         domain.RoleMember,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			return tx.InsertMembership(ctx, added)
		}
		if existing.IsActive() {
			return apperrors.NewConflictError("user is already an active member")
		}

		// Former admins come back as plain members.
		added = *existing
		added.IsRemoved = false
		added.Role = domain.RoleMember
		added.UpdatedAt = now
		return tx.UpdateMembership(ctx, added)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to add member",
			slog.String("workspace_id", workspaceID),
			slog.String("actor_id", actorID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Member added to workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("membership_id", added.MembershipID),
		slog.String("target_user_id", targetUserID),
		slog.String("added_by_user_id", actorID))
	s.publish(domain.EventMemberJoined, workspaceID, actorID, added)
	return &added, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, workspaceID, actorID, targetUserID string) (*domain.Membership, error) {
	var removed domain.Membership
	var promoted *domain.Membership
	err := s.membershipRepo.WithinWorkspaceTx(ctx, workspaceID, func(tx portsrepo.MembershipTx) error {
		workspace, actorMembership, err := lockedSubject(ctx, tx, actorID)
		if err != nil {
			return err
		}
		subject := domain.AccessSubject{
			ActorID:      actorID,
			Workspace:    workspace,
			Membership:   actorMembership,
			TargetUserID: targetUserID,
		}
		if err := Authorize(subject, domain.CapRemoveMember); err != nil {
			return err
		}

		target, err := activeMembershipOf(ctx, tx, targetUserID)
		if err != nil {
			return err
		}
		if target == nil {
			return apperrors.NewNotFoundError("no active membership for user")
		}

		now := s.now()
		if target.Role == domain.RoleAdmin {
			active, err := tx.ListActiveMemberships(ctx)
			if err != nil {
				return err
			}
			successor, err := ResolveAdminHandoff(active, *target, s.pickSuccessor)
			if err != nil {
				return err
			}
			if successor != nil {
				successor.UpdatedAt = now
				if err := tx.UpdateMembership(ctx, *successor); err != nil {
					return err
				}
				promoted = successor
			}
		}

		removed = *target
		removed.IsRemoved = true
		removed.UpdatedAt = now
		return tx.UpdateMembership(ctx, removed)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to remove member",
			slog.String("workspace_id", workspaceID),
			slog.String("actor_id", actorID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}

	if promoted != nil {
		s.LogInfo(ctx, "Admin role handed off before removal",
			slog.String("workspace_id", workspaceID),
			slog.String("leaving_user_id", targetUserID),
			slog.String("promoted_user_id", promoted.UserID))
		s.publish(domain.EventRoleChanged, workspaceID, actorID, *promoted)
	}
	s.LogInfo(ctx, "Member removed from workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID),
		slog.String("removed_by_user_id", actorID))
	s.publish(domain.EventMemberLeft, workspaceID, actorID, removed)
	return promoted, nil
}

func (s *membershipService) ToggleRole(ctx context.Context, workspaceID, actorID, membershipID string) (*domain.Membership, error) {
	var updated domain.Membership
	err := s.membershipRepo.WithinWorkspaceTx(ctx, workspaceID, func(tx portsrepo.MembershipTx) error {
		workspace, actorMembership, err := lockedSubject(ctx, tx, actorID)
		if err != nil {
			return err
		}
		subject := domain.AccessSubject{
			ActorID:    actorID,
			Workspace:  workspace,
			Membership: actorMembership,
		}
		if err := Authorize(subject, domain.CapManageMembers); err != nil {
			return err
		}

		target, err := tx.FindMembershipByID(ctx, membershipID)
		if err != nil {
			return err
		}
		if !target.IsActive() {
			return apperrors.NewNotFoundError("membership is not active")
		}

		updated = *target
		if target.Role == domain.RoleAdmin {
			active, err := tx.ListActiveMemberships(ctx)
			if err != nil {
				return err
			}
			if countActiveAdmins(active) <= 1 {
				return apperrors.NewForbiddenError("cannot remove last admin")
			}
			updated.Role = domain.RoleMember
		} else {
			updated.Role = domain.RoleAdmin
		}
		updated.UpdatedAt = s.now()
		return tx.UpdateMembership(ctx, updated)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to toggle member role",
			slog.String("workspace_id", workspaceID),
			slog.String("actor_id", actorID),
			slog.String("membership_id", membershipID))
		return nil, err
	}

	s.LogInfo(ctx, "Member role changed",
		slog.String("workspace_id", workspaceID),
		slog.String("membership_id", membershipID),
		slog.String("role", string(updated.Role)))
	s.publish(domain.EventRoleChanged, workspaceID, actorID, updated)
	return &updated, nil
}

func (s *membershipService) ListMembers(ctx context.Context, workspaceID, actorID string, filter domain.MemberFilter) ([]domain.Membership, int, error) {
	if _, err := s.access.AuthorizeUserAction(ctx, actorID, workspaceID, domain.CapReadMessages); err != nil {
		return nil, 0, err
	}

	window, err := pagination.Normalize(filter.Window)
	if err != nil {
		return nil, 0, err
	}
	filter.Window = window

	members, total, err := s.membershipRepo.ListMemberships(ctx, workspaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace members",
			slog.String("workspace_id", workspaceID))
		return nil, 0, err
	}
	if members == nil {
		members = []domain.Membership{}
	}

	s.LogDebug(ctx, "Workspace members listed",
		slog.String("workspace_id", workspaceID),
		slog.Int("count", len(members)),
		slog.Int("total", total))
	return members, total, nil
}
