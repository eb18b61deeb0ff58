package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMessageRepository struct {
	BaseRepository
}

func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

const messageSelect = `
SELECT message_id, workspace_id, sender_id, text, media_type, media_url,
	created_at, edit_at, edit_count, is_deleted
FROM messages
`

func scanMessage(row pgx.Row, m *domain.Message) error {
	return row.Scan(
		&m.MessageID, &m.WorkspaceID, &m.SenderID, &m.Text, &m.MediaType, &m.MediaURL,
		&m.CreatedAt, &m.EditAt, &m.EditCount, &m.IsDeleted,
	)
}

// likePattern escapes LIKE wildcards so the term matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// messageWhere builds the WHERE clause for a filter. Placeholders start at $1.
func messageWhere(workspaceID string, filter domain.MessageFilter) (string, []any) {
	clauses := []string{"workspace_id = $1"}
	args := []any{workspaceID}
	if !filter.IncludeDeleted {
		clauses = append(clauses, "is_deleted = FALSE")
	}
	if filter.SenderID != "" {
		args = append(args, filter.SenderID)
		clauses = append(clauses, fmt.Sprintf("sender_id = $%d", len(args)))
	}
	if filter.MediaType != "" {
		args = append(args, filter.MediaType)
		clauses = append(clauses, fmt.Sprintf("media_type = $%d", len(args)))
	}
	if filter.TextContains != "" {
		args = append(args, likePattern(filter.TextContains))
		clauses = append(clauses, fmt.Sprintf("text ILIKE $%d", len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PgxMessageRepository) FindMessageByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var m domain.Message
	if err := scanMessage(r.Pool.QueryRow(ctx, messageSelect+`WHERE message_id = $1`, messageID), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("message not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find message "+messageID, err)
	}
	return &m, nil
}

func (r *PgxMessageRepository) ListMessages(ctx context.Context, workspaceID string, filter domain.MessageFilter) ([]domain.Message, int, error) {
	where, args := messageWhere(workspaceID, filter)

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages `+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count messages", err)
	}

	query := messageSelect + where + fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.Pool.Query(ctx, query, append(args, filter.Window.Limit, filter.Window.Offset)...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to query messages", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan message row", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate message rows", err)
	}
	return messages, total, nil
}

func (r *PgxMessageRepository) SaveMessage(ctx context.Context, message domain.Message, senderReceipt domain.ReadReceipt) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO messages (
				message_id, workspace_id, sender_id, text, media_type, media_url,
				created_at, edit_at, edit_count, is_deleted
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			message.MessageID,
			message.WorkspaceID,
			message.SenderID,
			message.Text,
			message.MediaType,
			message.MediaURL,
			message.CreatedAt,
			message.EditAt,
			message.EditCount,
			message.IsDeleted,
		)
		if err != nil {
			return translateWriteError(err, "message ID "+message.MessageID+" already exists", "failed to save message "+message.MessageID)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO read_receipts (message_id, user_id, read_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (message_id, user_id) DO NOTHING;`,
			senderReceipt.MessageID, senderReceipt.UserID, senderReceipt.ReadAt,
		)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to save sender receipt", err)
		}
		return nil
	})
}

func (r *PgxMessageRepository) MutateMessage(ctx context.Context, messageID string, fn func(message *domain.Message) error) (*domain.Message, error) {
	var updated domain.Message
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := scanMessage(tx.QueryRow(ctx, messageSelect+`WHERE message_id = $1 FOR UPDATE`, messageID), &updated); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("message not found")
			}
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to lock message "+messageID, err)
		}
		if err := fn(&updated); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE messages
			SET text = $1, edit_at = $2, edit_count = $3, is_deleted = $4
			WHERE message_id = $5;`,
			updated.Text, updated.EditAt, updated.EditCount, updated.IsDeleted, messageID,
		)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to update message "+messageID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
