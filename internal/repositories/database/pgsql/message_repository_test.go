package pgsql

import (
	"testing"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off%`, likePattern("50% off"))
	assert.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestMessageWhere_NumbersPlaceholdersInOrder(t *testing.T) {
	where, args := messageWhere("ws1", domain.MessageFilter{
		SenderID:     "alice",
		MediaType:    domain.MediaImage,
		TextContains: "cat",
	})
	assert.Equal(t, "WHERE workspace_id = $1 AND is_deleted = FALSE AND sender_id = $2 AND media_type = $3 AND text ILIKE $4", where)
	assert.Equal(t, []any{"ws1", "alice", domain.MediaImage, "%cat%"}, args)
}

func TestMessageWhere_IncludeDeletedDropsTombstoneFilter(t *testing.T) {
	where, args := messageWhere("ws1", domain.MessageFilter{IncludeDeleted: true})
	assert.Equal(t, "WHERE workspace_id = $1", where)
	assert.Len(t, args, 1)
}
