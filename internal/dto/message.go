package dto

import (
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// SendMessageRequest defines data for posting a message.
type SendMessageRequest struct {
	Text      string `json:"text" binding:"max=10000"`
	MediaType string `json:"mediaType" binding:"omitempty,mediatype"`
	MediaURL  string `json:"mediaURL" binding:"omitempty,url"`
}

// ToBody converts the request to the domain payload.
func (r SendMessageRequest) ToBody() domain.MessageBody {
	return domain.MessageBody{
		Text:      r.Text,
		MediaType: domain.MediaType(r.MediaType),
		MediaURL:  r.MediaURL,
	}
}

// EditMessageRequest carries the replacement text.
type EditMessageRequest struct {
	Text string `json:"text" binding:"required,max=10000"`
}

// SearchMessagesQuery binds the search filters.
type SearchMessagesQuery struct {
	PageQuery
	SenderID  string `form:"senderID"`
	MediaType string `form:"mediaType" binding:"omitempty,mediatype"`
	Text      string `form:"text"`
}

// MarkReadRequest lists messages the caller has seen.
type MarkReadRequest struct {
	MessageIDs []string `json:"messageIDs" binding:"required,min=1,max=100,dive,required"`
}

// MarkReadResponse reports how many receipts were new.
type MarkReadResponse struct {
	Recorded int `json:"recorded"`
}

// MessageResponse defines data returned for a message. Deleted messages are returned as
// tombstones without text or media.
type MessageResponse struct {
	MessageID   string     `json:"messageID"`
	WorkspaceID string     `json:"workspaceID"`
	SenderID    string     `json:"senderID"`
	Text        *string    `json:"text,omitempty"`
	MediaType   string     `json:"mediaType"`
	MediaURL    *string    `json:"mediaURL,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	EditAt      *time.Time `json:"editAt,omitempty"`
	EditCount   int        `json:"editCount"`
	IsDeleted   bool       `json:"isDeleted"`
	IsFullyRead *bool      `json:"isFullyRead,omitempty"`
}

// ToMessageResponse converts domain.Message to DTO.
func ToMessageResponse(m *domain.Message) MessageResponse {
	resp := MessageResponse{
		MessageID:   m.MessageID,
		WorkspaceID: m.WorkspaceID,
		SenderID:    m.SenderID,
		MediaType:   string(m.MediaType),
		CreatedAt:   m.CreatedAt,
		EditAt:      m.EditAt,
		EditCount:   m.EditCount,
		IsDeleted:   m.IsDeleted,
	}
	if !m.IsDeleted {
		resp.Text = m.Text
		resp.MediaURL = m.MediaURL
	}
	return resp
}

// ToMessageResponses converts messages to DTOs.
func ToMessageResponses(ms []domain.Message) []MessageResponse {
	list := make([]MessageResponse, len(ms))
	for i := range ms {
		list[i] = ToMessageResponse(&ms[i])
	}
	return list
}

// ToMessageViewResponses converts annotated messages to DTOs.
func ToMessageViewResponses(views []domain.MessageView) []MessageResponse {
	list := make([]MessageResponse, len(views))
	for i := range views {
		list[i] = ToMessageResponse(&views[i].Message)
		fullyRead := views[i].IsFullyRead
		list[i].IsFullyRead = &fullyRead
	}
	return list
}
