package services

import (
	"math/rand/v2"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// successorPicker returns an index in [0, n).
type successorPicker func(n int) int

func randomSuccessor(n int) int {
	return rand.IntN(n)
}

// ResolveAdminHandoff decides whether removing leaving from the active roster needs an
// admin handoff. It returns the membership to promote (already switched to admin), nil
// when no promotion is needed, or a conflict error when leaving is the last admin and
// nobody else is left to take over. active must be read under the workspace lock.
func ResolveAdminHandoff(active []domain.Membership, leaving domain.Membership, pick successorPicker) (*domain.Membership, error) {
	if leaving.Role != domain.RoleAdmin {
		return nil, nil
	}

	others := make([]domain.Membership, 0, len(active))
	otherAdmins := 0
	for _, m := range active {
		if m.IsRemoved || m.UserID == leaving.UserID {
			continue
		}
		if m.Role == domain.RoleAdmin {
			otherAdmins++
		}
		others = append(others, m)
	}

	if otherAdmins > 0 {
		return nil, nil
	}
	if len(others) == 0 {
		return nil, apperrors.NewConflictError("cannot leave: no one to promote")
	}

	if pick == nil {
		pick = randomSuccessor
	}
	successor := others[pick(len(others))]
	successor.Role = domain.RoleAdmin
	return &successor, nil
}

// countActiveAdmins counts active admin memberships in a roster snapshot.
func countActiveAdmins(active []domain.Membership) int {
	n := 0
	for i := range active {
		if active[i].IsActiveAdmin() {
			n++
		}
	}
	return n
}
