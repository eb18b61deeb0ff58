package pgsql

import (
	portsrepo "github.com/SscSPs/workspace_chat_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WorkspaceRepo:   newPgxWorkspaceRepository(dbPool),
		MembershipRepo:  newPgxMembershipRepository(dbPool),
		MessageRepo:     newPgxMessageRepository(dbPool),
		ReadReceiptRepo: newPgxReadReceiptRepository(dbPool),
	}
}
