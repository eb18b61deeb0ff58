// Package memory keeps workspaces, rosters, messages and read receipts in process memory.
// It honours the same locking contract as the Postgres adapter: roster mutations are
// serialized per workspace and their writes become visible only on commit.
package memory

import (
	"sync"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
)

type receiptKey struct {
	messageID string
	userID    string
}

// Store is the shared state behind all memory repositories.
type Store struct {
	mu          sync.RWMutex
	seq         int64
	workspaces  map[string]domain.Workspace
	memberships map[string]domain.Membership
	messages    map[string]domain.Message
	receipts    map[receiptKey]domain.ReadReceipt
	order       map[string]int64

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		workspaces:  make(map[string]domain.Workspace),
		memberships: make(map[string]domain.Membership),
		messages:    make(map[string]domain.Message),
		receipts:    make(map[receiptKey]domain.ReadReceipt),
		order:       make(map[string]int64),
		locks:       make(map[string]*sync.Mutex),
	}
}

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WorkspaceRepo:   &workspaceRepository{store: store},
		MembershipRepo:  &membershipRepository{store: store},
		MessageRepo:     &messageRepository{store: store},
		ReadReceiptRepo: &readReceiptRepository{store: store},
	}
}

// workspaceLock returns the roster lock of a workspace, creating it on first use.
func (s *Store) workspaceLock(workspaceID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[workspaceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[workspaceID] = l
	}
	return l
}

// nextSeq records insertion order for id. Callers hold s.mu.
func (s *Store) nextSeq(id string) {
	s.seq++
	s.order[id] = s.seq
}
