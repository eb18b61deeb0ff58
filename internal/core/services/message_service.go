package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// messageService implements the MessageSvcFacade interface
type messageService struct {
	BaseService
	messageRepo    portsrepo.MessageRepositoryFacade
	membershipRepo portsrepo.MembershipReader
	access         portssvc.AccessPolicySvc
	ledger         portssvc.ReadLedgerSvcFacade
	editWindow     time.Duration
}

// MessageServiceOption is a functional option for configuring the message service
type MessageServiceOption func(*messageService)

// WithEditWindow sets how long a sender may edit a message after sending it.
func WithEditWindow(window time.Duration) MessageServiceOption {
	return func(s *messageService) {
		if window > 0 {
			s.editWindow = window
		}
	}
}

// WithMessageClock replaces the wall clock, mainly for edit-window tests.
func WithMessageClock(now func() time.Time) MessageServiceOption {
	return func(s *messageService) {
		s.Now = now
	}
}

// WithMessagePublisher sets where message events are sent after commit.
func WithMessagePublisher(publisher portssvc.EventPublisher) MessageServiceOption {
	return func(s *messageService) {
		s.Publisher = publisher
	}
}

// NewMessageService creates a new message service with the provided options
func NewMessageService(
	messageRepo portsrepo.MessageRepositoryFacade,
	membershipRepo portsrepo.MembershipReader,
	access portssvc.AccessPolicySvc,
	ledger portssvc.ReadLedgerSvcFacade,
	options ...MessageServiceOption,
) portssvc.MessageSvcFacade {
	svc := &messageService{
		messageRepo:    messageRepo,
		membershipRepo: membershipRepo,
		access:         access,
		ledger:         ledger,
		editWindow:     domain.DefaultEditWindow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MessageSvcFacade = (*messageService)(nil)

func (s *messageService) SendMessage(ctx context.Context, workspaceID, senderID string, body domain.MessageBody) (*domain.Message, error) {
	if _, err := s.access.AuthorizeUserAction(ctx, senderID, workspaceID, domain.CapSendMessage); err != nil {
		return nil, err
	}

	if body.MediaType == "" {
		body.MediaType = domain.MediaText
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	message := domain.Message{
		MessageID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		SenderID:    senderID,
		MediaType:   body.MediaType,
		CreatedAt:   now,
	}
	if text := strings.TrimSpace(body.Text); text != "" {
		message.Text = &body.Text
	}
	if body.MediaType != domain.MediaText {
		url := strings.TrimSpace(body.MediaURL)
		message.MediaURL = &url
	}

	receipt := domain.ReadReceipt{MessageID: message.MessageID, UserID: senderID, ReadAt: now}
	if err := s.messageRepo.SaveMessage(ctx, message, receipt); err != nil {
		s.LogError(ctx, err, "Failed to save message",
			slog.String("workspace_id", workspaceID),
			slog.String("sender_id", senderID))
		return nil, err
	}

	s.LogInfo(ctx, "Message sent",
		slog.String("workspace_id", workspaceID),
		slog.String("message_id", message.MessageID),
		slog.String("media_type", string(message.MediaType)))
	s.publish(domain.EventMessageCreated, workspaceID, senderID, message)
	return &message, nil
}

func (s *messageService) EditMessage(ctx context.Context, messageID, actorID, newText string) (*domain.Message, error) {
	if strings.TrimSpace(newText) == "" {
		return nil, apperrors.NewValidationFailedError("text must not be empty")
	}

	updated, err := s.messageRepo.MutateMessage(ctx, messageID, func(message *domain.Message) error {
		now := s.now()
		if err := message.CheckEditable(actorID, now, s.editWindow); err != nil {
			return err
		}
		message.ApplyEdit(newText, now)
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to edit message",
			slog.String("message_id", messageID),
			slog.String("actor_id", actorID))
		return nil, err
	}

	s.LogInfo(ctx, "Message edited",
		slog.String("message_id", messageID),
		slog.Int("edit_count", updated.EditCount))
	s.publish(domain.EventMessageEdited, updated.WorkspaceID, actorID, *updated)
	return updated, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, messageID, actorID string) (*domain.Message, error) {
	deleted, err := s.messageRepo.MutateMessage(ctx, messageID, func(message *domain.Message) error {
		if err := message.CheckDeletable(actorID); err != nil {
			return err
		}
		message.IsDeleted = true
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to delete message",
			slog.String("message_id", messageID),
			slog.String("actor_id", actorID))
		return nil, err
	}

	s.LogInfo(ctx, "Message deleted", slog.String("message_id", messageID))
	s.publish(domain.EventMessageDeleted, deleted.WorkspaceID, actorID, map[string]string{"messageID": messageID})
	return deleted, nil
}

func (s *messageService) SearchMessages(ctx context.Context, workspaceID, actorID string, filter domain.MessageFilter) ([]domain.Message, int, error) {
	if _, err := s.access.AuthorizeUserAction(ctx, actorID, workspaceID, domain.CapReadMessages); err != nil {
		return nil, 0, err
	}
	if filter.MediaType != "" && !filter.MediaType.IsValid() {
		return nil, 0, apperrors.NewValidationFailedError("unknown media type " + string(filter.MediaType))
	}
	window, err := pagination.Normalize(filter.Window)
	if err != nil {
		return nil, 0, err
	}
	filter.Window = window
	filter.IncludeDeleted = false
	filter.TextContains = strings.TrimSpace(filter.TextContains)

	messages, total, err := s.messageRepo.ListMessages(ctx, workspaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to search messages", slog.String("workspace_id", workspaceID))
		return nil, 0, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, total, nil
}

func (s *messageService) ListMessages(ctx context.Context, workspaceID, actorID string, window domain.PageWindow) ([]domain.MessageView, int, error) {
	if _, err := s.access.AuthorizeUserAction(ctx, actorID, workspaceID, domain.CapReadMessages); err != nil {
		return nil, 0, err
	}
	window, err := pagination.Normalize(window)
	if err != nil {
		return nil, 0, err
	}

	messages, total, err := s.messageRepo.ListMessages(ctx, workspaceID, domain.MessageFilter{
		IncludeDeleted: true,
		Window:         window,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list messages", slog.String("workspace_id", workspaceID))
		return nil, 0, err
	}

	for i := range messages {
		if messages[i].IsDeleted {
			continue
		}
		if _, err := s.ledger.RecordRead(ctx, messages[i].MessageID, actorID); err != nil {
			s.LogError(ctx, err, "Failed to record read on retrieval",
				slog.String("message_id", messages[i].MessageID))
			return nil, 0, err
		}
	}

	memberIDs, err := s.membershipRepo.ListActiveMemberIDs(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active members", slog.String("workspace_id", workspaceID))
		return nil, 0, err
	}
	views, err := s.ledger.Annotate(ctx, messages, memberIDs)
	if err != nil {
		return nil, 0, err
	}

	s.LogDebug(ctx, "Messages retrieved",
		slog.String("workspace_id", workspaceID),
		slog.Int("count", len(views)),
		slog.Int("total", total))
	return views, total, nil
}
