package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReadReceiptRepository struct {
	BaseRepository
}

func newPgxReadReceiptRepository(pool *pgxpool.Pool) portsrepo.ReadReceiptRepositoryFacade {
	return &PgxReadReceiptRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReadReceiptRepositoryFacade = (*PgxReadReceiptRepository)(nil)

func (r *PgxReadReceiptRepository) SaveReadReceipt(ctx context.Context, receipt domain.ReadReceipt) (bool, error) {
	result, err := r.Pool.Exec(ctx, `
		INSERT INTO read_receipts (message_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, user_id) DO NOTHING;`,
		receipt.MessageID, receipt.UserID, receipt.ReadAt,
	)
	if err != nil {
		return false, translateWriteError(err, "read receipt already exists", "failed to save read receipt for message "+receipt.MessageID)
	}
	return result.RowsAffected() == 1, nil
}

const unreadCountQuery = `
SELECT m.workspace_id, COUNT(*)
FROM messages m
WHERE m.workspace_id = ANY($1)
	AND m.is_deleted = FALSE
	AND NOT EXISTS (
		SELECT 1 FROM read_receipts rr
		WHERE rr.message_id = m.message_id AND rr.user_id = $2
	)
GROUP BY m.workspace_id;`

func (r *PgxReadReceiptRepository) CountUnread(ctx context.Context, workspaceID, userID string) (int, error) {
	counts, err := r.CountUnreadByWorkspace(ctx, userID, []string{workspaceID})
	if err != nil {
		return 0, err
	}
	return counts[workspaceID], nil
}

func (r *PgxReadReceiptRepository) CountUnreadByWorkspace(ctx context.Context, userID string, workspaceIDs []string) (map[string]int, error) {
	rows, err := r.Pool.Query(ctx, unreadCountQuery, workspaceIDs, userID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to count unread messages", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(workspaceIDs))
	for rows.Next() {
		var workspaceID string
		var count int
		if err := rows.Scan(&workspaceID, &count); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan unread count", err)
		}
		counts[workspaceID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate unread counts", err)
	}
	return counts, nil
}

func (r *PgxReadReceiptRepository) ListReaders(ctx context.Context, messageIDs []string) (map[string]map[string]struct{}, error) {
	readers := make(map[string]map[string]struct{}, len(messageIDs))
	if len(messageIDs) == 0 {
		return readers, nil
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT message_id, user_id FROM read_receipts WHERE message_id = ANY($1)`, messageIDs)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query readers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID, userID string
		if err := rows.Scan(&messageID, &userID); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan reader row", err)
		}
		if readers[messageID] == nil {
			readers[messageID] = make(map[string]struct{})
		}
		readers[messageID][userID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate reader rows", err)
	}
	return readers, nil
}
