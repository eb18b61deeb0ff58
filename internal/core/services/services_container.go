package services

import (
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil when nothing listens for workspace events.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Access policy first since every other service depends on it
	container.Access = NewAccessPolicyService(repos.WorkspaceRepo, repos.MembershipRepo)

	container.ReadLedger = NewReadLedgerService(repos.ReadReceiptRepo, repos.MessageRepo, container.Access)

	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo, container.Access, container.ReadLedger)

	container.Membership = NewMembershipService(
		repos.MembershipRepo,
		container.Access,
		WithMembershipPublisher(publisher),
	)

	container.Message = NewMessageService(
		repos.MessageRepo,
		repos.MembershipRepo,
		container.Access,
		container.ReadLedger,
		WithEditWindow(cfg.MessageEditWindow),
		WithMessagePublisher(publisher),
	)

	return container
}
