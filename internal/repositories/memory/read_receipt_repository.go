package memory

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
)

type readReceiptRepository struct {
	store *Store
}

var _ portsrepo.ReadReceiptRepositoryFacade = (*readReceiptRepository)(nil)

func (r *readReceiptRepository) SaveReadReceipt(_ context.Context, receipt domain.ReadReceipt) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.messages[receipt.MessageID]; !ok {
		return false, apperrors.NewNotFoundError("message not found")
	}
	key := receiptKey{messageID: receipt.MessageID, userID: receipt.UserID}
	if _, exists := r.store.receipts[key]; exists {
		return false, nil
	}
	r.store.receipts[key] = receipt
	return true, nil
}

func (r *readReceiptRepository) CountUnread(ctx context.Context, workspaceID, userID string) (int, error) {
	counts, err := r.CountUnreadByWorkspace(ctx, userID, []string{workspaceID})
	if err != nil {
		return 0, err
	}
	return counts[workspaceID], nil
}

func (r *readReceiptRepository) CountUnreadByWorkspace(_ context.Context, userID string, workspaceIDs []string) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]struct{}, len(workspaceIDs))
	for _, id := range workspaceIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int)
	for id, m := range r.store.messages {
		if m.IsDeleted {
			continue
		}
		if _, ok := wanted[m.WorkspaceID]; !ok {
			continue
		}
		if _, read := r.store.receipts[receiptKey{messageID: id, userID: userID}]; read {
			continue
		}
		counts[m.WorkspaceID]++
	}
	return counts, nil
}

func (r *readReceiptRepository) ListReaders(_ context.Context, messageIDs []string) (map[string]map[string]struct{}, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = struct{}{}
	}
	readers := make(map[string]map[string]struct{}, len(messageIDs))
	for key := range r.store.receipts {
		if _, ok := wanted[key.messageID]; !ok {
			continue
		}
		if readers[key.messageID] == nil {
			readers[key.messageID] = make(map[string]struct{})
		}
		readers[key.messageID][key.userID] = struct{}{}
	}
	return readers, nil
}
