package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

const membershipSelect = `
SELECT membership_id, workspace_id, user_id, role, is_removed, created_at, updated_at
FROM memberships
`

// querier is the subset of pgxpool.Pool and pgx.Tx used by the roster queries.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanMembership(row pgx.Row, m *domain.Membership) error {
	return row.Scan(&m.MembershipID, &m.WorkspaceID, &m.UserID, &m.Role, &m.IsRemoved, &m.CreatedAt, &m.UpdatedAt)
}

func queryMemberships(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.Membership, error) {
	rows, err := q.Query(ctx, membershipSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query memberships", err)
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		if err := scanMembership(rows, &m); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate membership rows", err)
	}
	return memberships, nil
}

func queryMembership(ctx context.Context, q querier, filterQuery string, args ...any) (*domain.Membership, error) {
	var m domain.Membership
	if err := scanMembership(q.QueryRow(ctx, membershipSelect+filterQuery, args...), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find membership", err)
	}
	return &m, nil
}

func insertMembership(ctx context.Context, tx pgx.Tx, m domain.Membership) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO memberships (membership_id, workspace_id, user_id, role, is_removed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.MembershipID, m.WorkspaceID, m.UserID, m.Role, m.IsRemoved, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "membership already exists for user "+m.UserID, "failed to save membership "+m.MembershipID)
	}
	return nil
}

func (r *PgxMembershipRepository) FindActiveMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
	m, err := queryMembership(ctx, r.Pool, `WHERE workspace_id = $1 AND user_id = $2 AND is_removed = FALSE`, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no active membership")
		}
		return nil, err
	}
	return m, nil
}

func (r *PgxMembershipRepository) ListMemberships(ctx context.Context, workspaceID string, filter domain.MemberFilter) ([]domain.Membership, int, error) {
	where := `WHERE workspace_id = $1`
	if !filter.IncludeRemoved {
		where += ` AND is_removed = FALSE`
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM memberships `+where, workspaceID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count memberships", err)
	}
	memberships, err := queryMemberships(ctx, r.Pool,
		where+` ORDER BY created_at, membership_id LIMIT $2 OFFSET $3`,
		workspaceID, filter.Window.Limit, filter.Window.Offset)
	if err != nil {
		return nil, 0, err
	}
	return memberships, total, nil
}

func (r *PgxMembershipRepository) ListActiveMemberIDs(ctx context.Context, workspaceID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT user_id FROM memberships WHERE workspace_id = $1 AND is_removed = FALSE ORDER BY user_id`, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query member ids", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect member ids", err)
	}
	return ids, nil
}

// WithinWorkspaceTx locks the workspace row, then the roster rows, and runs fn inside the
// same transaction. Concurrent callers on one workspace queue on the row lock.
func (r *PgxMembershipRepository) WithinWorkspaceTx(ctx context.Context, workspaceID string, fn func(tx portsrepo.MembershipTx) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		workspace, err := lockWorkspace(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `SELECT 1 FROM memberships WHERE workspace_id = $1 FOR UPDATE`, workspaceID); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to lock roster of "+workspaceID, err)
		}
		return fn(&pgxMembershipTx{tx: tx, workspaceID: workspaceID, workspace: *workspace})
	})
}

type pgxMembershipTx struct {
	tx          pgx.Tx
	workspaceID string
	workspace   domain.Workspace
}

var _ portsrepo.MembershipTx = (*pgxMembershipTx)(nil)

func (t *pgxMembershipTx) Workspace(_ context.Context) (*domain.Workspace, error) {
	w := t.workspace
	return &w, nil
}

func (t *pgxMembershipTx) ListActiveMemberships(ctx context.Context) ([]domain.Membership, error) {
	return queryMemberships(ctx, t.tx, `WHERE workspace_id = $1 AND is_removed = FALSE ORDER BY created_at, membership_id`, t.workspaceID)
}

func (t *pgxMembershipTx) FindMembership(ctx context.Context, userID string) (*domain.Membership, error) {
	return queryMembership(ctx, t.tx, `WHERE workspace_id = $1 AND user_id = $2`, t.workspaceID, userID)
}

func (t *pgxMembershipTx) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	return queryMembership(ctx, t.tx, `WHERE workspace_id = $1 AND membership_id = $2`, t.workspaceID, membershipID)
}

func (t *pgxMembershipTx) InsertMembership(ctx context.Context, membership domain.Membership) error {
	membership.WorkspaceID = t.workspaceID
	return insertMembership(ctx, t.tx, membership)
}

func (t *pgxMembershipTx) UpdateMembership(ctx context.Context, membership domain.Membership) error {
	result, err := t.tx.Exec(ctx, `
		UPDATE memberships
		SET role = $1, is_removed = $2, updated_at = $3
		WHERE workspace_id = $4 AND membership_id = $5;`,
		membership.Role, membership.IsRemoved, membership.UpdatedAt, t.workspaceID, membership.MembershipID,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update membership "+membership.MembershipID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}
