package services

import (
	"context"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// MessageSvcFacade defines operations on a workspace's message stream
type MessageSvcFacade interface {
	SendMessage(ctx context.Context, workspaceID, senderID string, body domain.MessageBody) (*domain.Message, error)

	// EditMessage replaces the text of a text message within the edit window. Sender only.
	EditMessage(ctx context.Context, messageID, actorID, newText string) (*domain.Message, error)

	// DeleteMessage soft-deletes a message. Sender only, once.
	DeleteMessage(ctx context.Context, messageID, actorID string) (*domain.Message, error)

	// SearchMessages filters the non-deleted messages of a workspace, newest first.
	SearchMessages(ctx context.Context, workspaceID, actorID string, filter domain.MessageFilter) ([]domain.Message, int, error)

	// ListMessages returns the chat history newest first, tombstones included, annotated with
	// fully-read state. The returned messages are recorded as read by the actor.
	ListMessages(ctx context.Context, workspaceID, actorID string, window domain.PageWindow) ([]domain.MessageView, int, error)
}
