package services

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// ReadLedgerSvcFacade records and queries read receipts
type ReadLedgerSvcFacade interface {
	// RecordRead stores a receipt; repeating it is a no-op. Reports whether a receipt was added.
	RecordRead(ctx context.Context, messageID, userID string) (bool, error)

	// MarkRead records receipts for messages of a workspace on behalf of a member and returns
	// how many were new. No receipt is written when any id is unknown or belongs elsewhere.
	MarkRead(ctx context.Context, workspaceID, actorID string, messageIDs []string) (int, error)

	// UnreadCount counts non-deleted messages of the workspace the user has no receipt for.
	UnreadCount(ctx context.Context, workspaceID, userID string) (int, error)

	// UnreadCounts is UnreadCount for several workspaces.
	UnreadCounts(ctx context.Context, userID string, workspaceIDs []string) (map[string]int, error)

	// IsFullyRead reports whether every id in activeMemberIDs has read the message.
	IsFullyRead(ctx context.Context, message domain.Message, activeMemberIDs []string) (bool, error)

	// Annotate attaches fully-read state to a batch of messages.
	Annotate(ctx context.Context, messages []domain.Message, activeMemberIDs []string) ([]domain.MessageView, error)
}

// EventPublisher receives workspace events after the change that caused them has committed.
type EventPublisher interface {
	Publish(event domain.WorkspaceEvent)
}
