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

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

const workspaceColumns = `
	w.workspace_id, w.name, w.workspace_type, w.creator_id, w.image_url,
	w.created_at, w.last_updated_at`

func scanWorkspace(row pgx.Row, dest *domain.Workspace, extra ...any) error {
	targets := []any{
		&dest.WorkspaceID, &dest.Name, &dest.Type, &dest.CreatorID, &dest.ImageURL,
		&dest.CreatedAt, &dest.LastUpdatedAt,
	}
	return row.Scan(append(targets, extra...)...)
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `SELECT` + workspaceColumns + ` FROM workspaces w WHERE w.workspace_id = $1`
	var w domain.Workspace
	if err := scanWorkspace(r.Pool.QueryRow(ctx, query, workspaceID), &w); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("workspace not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find workspace "+workspaceID, err)
	}
	return &w, nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error) {
	query := `SELECT` + workspaceColumns + `, m.role, m.created_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.workspace_id
		WHERE m.user_id = $1 AND m.is_removed = FALSE
		ORDER BY w.created_at DESC, w.workspace_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query workspaces of user "+userID, err)
	}
	defer rows.Close()

	summaries := []domain.WorkspaceSummary{}
	for rows.Next() {
		var s domain.WorkspaceSummary
		if err := scanWorkspace(rows, &s.Workspace, &s.Role, &s.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan workspace row", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate workspace rows", err)
	}
	return summaries, nil
}

func (r *PgxWorkspaceRepository) ListPublicWorkspaces(ctx context.Context, window domain.PageWindow) ([]domain.Workspace, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workspaces WHERE workspace_type = 'public'`).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count public workspaces", err)
	}

	query := `SELECT` + workspaceColumns + ` FROM workspaces w
		WHERE w.workspace_type = 'public'
		ORDER BY w.created_at DESC, w.workspace_id
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, window.Limit, window.Offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to query public workspaces", err)
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		var w domain.Workspace
		if err := scanWorkspace(rows, &w); err != nil {
			return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan workspace row", err)
		}
		workspaces = append(workspaces, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate workspace rows", err)
	}
	return workspaces, total, nil
}

func (r *PgxWorkspaceRepository) CreateWorkspace(ctx context.Context, workspace domain.Workspace, creator domain.Membership) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO workspaces (
				workspace_id, name, workspace_type, creator_id, image_url, created_at, last_updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			workspace.WorkspaceID,
			workspace.Name,
			workspace.Type,
			workspace.CreatorID,
			workspace.ImageURL,
			workspace.CreatedAt,
			workspace.LastUpdatedAt,
		)
		if err != nil {
			return translateWriteError(err, "workspace ID "+workspace.WorkspaceID+" already exists", "failed to save workspace "+workspace.WorkspaceID)
		}
		return insertMembership(ctx, tx, creator)
	})
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	result, err := r.Pool.Exec(ctx, `
		UPDATE workspaces
		SET name = $1, workspace_type = $2, image_url = $3, last_updated_at = $4
		WHERE workspace_id = $5;`,
		workspace.Name,
		workspace.Type,
		workspace.ImageURL,
		workspace.LastUpdatedAt,
		workspace.WorkspaceID,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to update workspace "+workspace.WorkspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("workspace not found")
	}
	return nil
}

// DeleteWorkspace takes the same row lock as roster transactions so a deletion never
// interleaves with a membership change. Child rows go through ON DELETE CASCADE.
func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workspaces WHERE workspace_id = $1`, workspaceID); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to delete workspace "+workspaceID, err)
		}
		return nil
	})
}

// lockWorkspace takes the workspace row lock for the rest of tx and returns the locked row.
// UPDATE statements on the row wait for the lock, so the returned settings stay current
// until tx ends.
func lockWorkspace(ctx context.Context, tx pgx.Tx, workspaceID string) (*domain.Workspace, error) {
	query := `SELECT` + workspaceColumns + ` FROM workspaces w WHERE w.workspace_id = $1 FOR UPDATE`
	var w domain.Workspace
	if err := scanWorkspace(tx.QueryRow(ctx, query, workspaceID), &w); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("workspace not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to lock workspace "+workspaceID, err)
	}
	return &w, nil
}
