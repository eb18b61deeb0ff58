package repositories

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// ReadReceiptRepositoryFacade is the persistence side of the read-tracking ledger.
type ReadReceiptRepositoryFacade interface {
	// SaveReadReceipt inserts the receipt unless one already exists for the pair.
	// Reports whether a row was written.
	SaveReadReceipt(ctx context.Context, receipt domain.ReadReceipt) (bool, error)

	// CountUnread counts non-deleted messages of the workspace without a receipt from userID.
	CountUnread(ctx context.Context, workspaceID, userID string) (int, error)

	// CountUnreadByWorkspace is CountUnread for several workspaces at once. Workspaces with
	// nothing unread may be absent from the result.
	CountUnreadByWorkspace(ctx context.Context, userID string, workspaceIDs []string) (map[string]int, error)

	// ListReaders returns, per message id, the set of user ids holding a receipt.
	ListReaders(ctx context.Context, messageIDs []string) (map[string]map[string]struct{}, error)
}
