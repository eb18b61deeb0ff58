package repositories

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// MessageReader defines read operations for messages
type MessageReader interface {
	// FindMessageByID retrieves a message by ID, deleted or not.
	FindMessageByID(ctx context.Context, messageID string) (*domain.Message, error)

	// ListMessages returns one window of a workspace's messages newest first and the total
	// number of rows matching the filter.
	ListMessages(ctx context.Context, workspaceID string, filter domain.MessageFilter) ([]domain.Message, int, error)
}

// MessageWriter defines write operations for messages
type MessageWriter interface {
	// SaveMessage stores a new message together with the sender's own read receipt.
	SaveMessage(ctx context.Context, message domain.Message, senderReceipt domain.ReadReceipt) error

	// MutateMessage locks the message row, hands a copy to fn and persists the copy if fn
	// returns nil. fn's error is returned unchanged.
	MutateMessage(ctx context.Context, messageID string, fn func(message *domain.Message) error) (*domain.Message, error)
}

// MessageRepositoryFacade combines all message-related repository interfaces
type MessageRepositoryFacade interface {
	MessageReader
	MessageWriter
}
