package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/core/services"
	"github.com/SscSPs/workspace_chat_app/internal/repositories/memory"
	"github.com/stretchr/testify/require"
)

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.WorkspaceEvent
}

func (p *recordingPublisher) Publish(event domain.WorkspaceEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// manualClock is a settable clock for edit-window tests.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testEnv wires every service against a fresh in-memory store.
type testEnv struct {
	repos      portsrepo.RepositoryProvider
	access     portssvc.AccessPolicySvc
	ledger     portssvc.ReadLedgerSvcFacade
	workspaces portssvc.WorkspaceSvcFacade
	members    portssvc.MembershipSvcFacade
	messages   portssvc.MessageSvcFacade
	events     *recordingPublisher
	clock      *manualClock
}

func newTestEnv(t *testing.T, memberOpts ...services.MembershipServiceOption) *testEnv {
	t.Helper()
	env := &testEnv{
		repos:  memory.NewRepositoryProvider(memory.NewStore()),
		events: &recordingPublisher{},
		clock:  &manualClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	env.access = services.NewAccessPolicyService(env.repos.WorkspaceRepo, env.repos.MembershipRepo)
	env.ledger = services.NewReadLedgerService(env.repos.ReadReceiptRepo, env.repos.MessageRepo, env.access)
	env.workspaces = services.NewWorkspaceService(env.repos.WorkspaceRepo, env.access, env.ledger)
	env.members = services.NewMembershipService(env.repos.MembershipRepo, env.access,
		append([]services.MembershipServiceOption{services.WithMembershipPublisher(env.events)}, memberOpts...)...)
	env.messages = services.NewMessageService(env.repos.MessageRepo, env.repos.MembershipRepo, env.access, env.ledger,
		services.WithMessagePublisher(env.events),
		services.WithMessageClock(env.clock.Now),
		services.WithEditWindow(domain.DefaultEditWindow))
	return env
}

// workspace creates a workspace owned by creator and adds the given users as members.
func (env *testEnv) workspace(t *testing.T, creator string, workspaceType domain.WorkspaceType, members ...string) string {
	t.Helper()
	ctx := context.Background()
	ws, err := env.workspaces.CreateWorkspace(ctx, creator, "team-"+creator, workspaceType, nil)
	require.NoError(t, err)
	for _, m := range members {
		_, err := env.members.AddMember(ctx, ws.WorkspaceID, creator, m)
		require.NoError(t, err)
	}
	return ws.WorkspaceID
}

func (env *testEnv) role(t *testing.T, workspaceID, userID string) domain.MembershipRole {
	t.Helper()
	m, err := env.repos.MembershipRepo.FindActiveMembership(context.Background(), workspaceID, userID)
	require.NoError(t, err)
	return m.Role
}

func (env *testEnv) activeAdmins(t *testing.T, workspaceID string) int {
	t.Helper()
	members, _, err := env.repos.MembershipRepo.ListMemberships(context.Background(), workspaceID, domain.MemberFilter{
		Window: domain.PageWindow{Limit: 100},
	})
	require.NoError(t, err)
	n := 0
	for _, m := range members {
		if m.IsActiveAdmin() {
			n++
		}
	}
	return n
}

func (env *testEnv) send(t *testing.T, workspaceID, senderID, text string) *domain.Message {
	t.Helper()
	m, err := env.messages.SendMessage(context.Background(), workspaceID, senderID, domain.MessageBody{Text: text})
	require.NoError(t, err)
	return m
}
