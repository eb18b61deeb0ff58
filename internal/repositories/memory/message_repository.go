package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
)

type messageRepository struct {
	store *Store
}

var _ portsrepo.MessageRepositoryFacade = (*messageRepository)(nil)

func (r *messageRepository) FindMessageByID(_ context.Context, messageID string) (*domain.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.messages[messageID]
	if !ok {
		return nil, apperrors.NewNotFoundError("message not found")
	}
	return &m, nil
}

func (r *messageRepository) ListMessages(_ context.Context, workspaceID string, filter domain.MessageFilter) ([]domain.Message, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(filter.TextContains)
	rows := []domain.Message{}
	for _, m := range r.store.messages {
		if m.WorkspaceID != workspaceID {
			continue
		}
		if m.IsDeleted && !filter.IncludeDeleted {
			continue
		}
		if filter.SenderID != "" && m.SenderID != filter.SenderID {
			continue
		}
		if filter.MediaType != "" && m.MediaType != filter.MediaType {
			continue
		}
		if needle != "" && (m.Text == nil || !strings.Contains(strings.ToLower(*m.Text), needle)) {
			continue
		}
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return r.store.order[rows[i].MessageID] > r.store.order[rows[j].MessageID]
	})
	return pagination.Slice(rows, filter.Window), len(rows), nil
}

func (r *messageRepository) SaveMessage(_ context.Context, message domain.Message, senderReceipt domain.ReadReceipt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.workspaces[message.WorkspaceID]; !ok {
		return apperrors.NewNotFoundError("workspace not found")
	}
	if _, exists := r.store.messages[message.MessageID]; exists {
		return apperrors.NewConflictError("message ID " + message.MessageID + " already exists")
	}
	r.store.messages[message.MessageID] = message
	r.store.nextSeq(message.MessageID)
	r.store.receipts[receiptKey{messageID: senderReceipt.MessageID, userID: senderReceipt.UserID}] = senderReceipt
	return nil
}

// MutateMessage runs fn under the store's write lock so concurrent edits of one message
// apply one after another.
func (r *messageRepository) MutateMessage(_ context.Context, messageID string, fn func(message *domain.Message) error) (*domain.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.messages[messageID]
	if !ok {
		return nil, apperrors.NewNotFoundError("message not found")
	}
	draft := current
	if err := fn(&draft); err != nil {
		return nil, err
	}
	r.store.messages[messageID] = draft
	return &draft, nil
}
