package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
)

// readLedgerService implements the ReadLedgerSvcFacade interface
type readLedgerService struct {
	BaseService
	receiptRepo portsrepo.ReadReceiptRepositoryFacade
	messageRepo portsrepo.MessageReader
	access      portssvc.AccessPolicySvc
}

// NewReadLedgerService creates the read-tracking ledger.
func NewReadLedgerService(
	receiptRepo portsrepo.ReadReceiptRepositoryFacade,
	messageRepo portsrepo.MessageReader,
	access portssvc.AccessPolicySvc,
) portssvc.ReadLedgerSvcFacade {
	return &readLedgerService{
		receiptRepo: receiptRepo,
		messageRepo: messageRepo,
		access:      access,
	}
}

var _ portssvc.ReadLedgerSvcFacade = (*readLedgerService)(nil)

func (s *readLedgerService) RecordRead(ctx context.Context, messageID, userID string) (bool, error) {
	inserted, err := s.receiptRepo.SaveReadReceipt(ctx, domain.ReadReceipt{
		MessageID: messageID,
		UserID:    userID,
		ReadAt:    s.now(),
	})
	if err != nil {
		return false, err
	}
	if inserted {
		s.LogDebug(ctx, "Read receipt recorded",
			slog.String("message_id", messageID),
			slog.String("user_id", userID))
	}
	return inserted, nil
}

func (s *readLedgerService) MarkRead(ctx context.Context, workspaceID, actorID string, messageIDs []string) (int, error) {
	if _, err := s.access.AuthorizeUserAction(ctx, actorID, workspaceID, domain.CapReadMessages); err != nil {
		return 0, err
	}

	// Every id is checked before any receipt is written.
	for _, messageID := range messageIDs {
		message, err := s.messageRepo.FindMessageByID(ctx, messageID)
		if err != nil {
			return 0, err
		}
		if message.WorkspaceID != workspaceID {
			return 0, apperrors.NewNotFoundError("message not found in workspace")
		}
	}

	added := 0
	for _, messageID := range messageIDs {
		inserted, err := s.RecordRead(ctx, messageID, actorID)
		if err != nil {
			s.LogError(ctx, err, "Failed to record read receipt",
				slog.String("message_id", messageID),
				slog.String("user_id", actorID))
			return added, err
		}
		if inserted {
			added++
		}
	}
	return added, nil
}

func (s *readLedgerService) UnreadCount(ctx context.Context, workspaceID, userID string) (int, error) {
	count, err := s.receiptRepo.CountUnread(ctx, workspaceID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unread messages",
			slog.String("workspace_id", workspaceID),
			slog.String("user_id", userID))
		return 0, err
	}
	return count, nil
}

func (s *readLedgerService) UnreadCounts(ctx context.Context, userID string, workspaceIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(workspaceIDs))
	if len(workspaceIDs) == 0 {
		return counts, nil
	}
	found, err := s.receiptRepo.CountUnreadByWorkspace(ctx, userID, workspaceIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unread messages per workspace",
			slog.String("user_id", userID))
		return nil, err
	}
	for _, id := range workspaceIDs {
		counts[id] = found[id]
	}
	return counts, nil
}

func (s *readLedgerService) IsFullyRead(ctx context.Context, message domain.Message, activeMemberIDs []string) (bool, error) {
	readers, err := s.receiptRepo.ListReaders(ctx, []string{message.MessageID})
	if err != nil {
		return false, err
	}
	return readByAll(readers[message.MessageID], activeMemberIDs), nil
}

func (s *readLedgerService) Annotate(ctx context.Context, messages []domain.Message, activeMemberIDs []string) ([]domain.MessageView, error) {
	views := make([]domain.MessageView, len(messages))
	if len(messages) == 0 {
		return views, nil
	}

	ids := make([]string, len(messages))
	for i := range messages {
		ids[i] = messages[i].MessageID
	}
	readers, err := s.receiptRepo.ListReaders(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load message readers", slog.Int("messages", len(ids)))
		return nil, err
	}

	for i := range messages {
		views[i] = domain.MessageView{
			Message:     messages[i],
			IsFullyRead: readByAll(readers[messages[i].MessageID], activeMemberIDs),
		}
	}
	return views, nil
}

// readByAll reports whether every member id appears in readers.
func readByAll(readers map[string]struct{}, memberIDs []string) bool {
	for _, id := range memberIDs {
		if _, ok := readers[id]; !ok {
			return false
		}
	}
	return true
}
