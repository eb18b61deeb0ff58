package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
)

// MediaType classifies a message payload.
type MediaType string

const (
	MediaText  MediaType = "text"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// DefaultEditWindow is how long after sending a message its sender may still edit it.
const DefaultEditWindow = 15 * time.Minute

// IsValid reports whether t is a known media type.
func (t MediaType) IsValid() bool {
	switch t {
	case MediaText, MediaAudio, MediaVideo, MediaImage:
		return true
	}
	return false
}

// Message is a single entry in a workspace's message stream.
type Message struct {
	MessageID   string     `json:"messageID"`
	WorkspaceID string     `json:"workspaceID"`
	SenderID    string     `json:"senderID"`
	Text        *string    `json:"text,omitempty"`
	MediaType   MediaType  `json:"mediaType"`
	MediaURL    *string    `json:"mediaURL,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	EditAt      *time.Time `json:"editAt,omitempty"`
	EditCount   int        `json:"editCount"`
	IsDeleted   bool       `json:"isDeleted"`
}

// MessageBody is the payload a member submits when sending.
type MessageBody struct {
	Text      string
	MediaType MediaType
	MediaURL  string
}

// Validate checks that the body carries text for text messages and a media URL otherwise.
func (b MessageBody) Validate() error {
	if b.MediaType == "" {
		b.MediaType = MediaText
	}
	if !b.MediaType.IsValid() {
		return apperrors.NewValidationFailedError("unknown media type " + string(b.MediaType))
	}
	if b.MediaType == MediaText {
		if strings.TrimSpace(b.Text) == "" {
			return apperrors.NewValidationFailedError("text message requires non-empty text")
		}
		return nil
	}
	if strings.TrimSpace(b.MediaURL) == "" {
		return apperrors.NewValidationFailedError("media message requires a media URL")
	}
	return nil
}

// CheckEditable returns nil when actor may replace the text of m at now.
func (m *Message) CheckEditable(actorID string, now time.Time, window time.Duration) error {
	if m.SenderID != actorID {
		return apperrors.NewForbiddenError("only the sender can edit a message")
	}
	if m.IsDeleted {
		return apperrors.NewForbiddenError("message has been deleted")
	}
	if m.MediaType != MediaText {
		return apperrors.NewForbiddenError("only text messages can be edited")
	}
	if now.Sub(m.CreatedAt) > window {
		return apperrors.NewForbiddenError("time limit exceeded")
	}
	return nil
}

// ApplyEdit replaces the text and bumps the edit counter. Callers check CheckEditable first.
func (m *Message) ApplyEdit(text string, now time.Time) {
	m.Text = &text
	m.EditCount++
	m.EditAt = &now
}

// CheckDeletable returns nil when actor may soft-delete m.
func (m *Message) CheckDeletable(actorID string) error {
	if m.SenderID != actorID {
		return apperrors.NewForbiddenError("only the sender can delete a message")
	}
	if m.IsDeleted {
		return apperrors.NewForbiddenError("message already deleted")
	}
	return nil
}

// MessageFilter narrows a message listing or search.
type MessageFilter struct {
	SenderID       string
	MediaType      MediaType
	TextContains   string
	IncludeDeleted bool
	Window         PageWindow
}

// MessageView is a message annotated for a reader.
type MessageView struct {
	Message
	IsFullyRead bool `json:"isFullyRead"`
}
