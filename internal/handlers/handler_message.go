package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/dto"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// messageHandler handles HTTP requests related to messages and read receipts.
type messageHandler struct {
	messageService portssvc.MessageSvcFacade
	readLedger     portssvc.ReadLedgerSvcFacade
}

func newMessageHandler(ms portssvc.MessageSvcFacade, rl portssvc.ReadLedgerSvcFacade) *messageHandler {
	return &messageHandler{
		messageService: ms,
		readLedger:     rl,
	}
}

// RegisterMessageRoutes registers the message stream routes of a workspace and the
// per-message edit/delete routes.
func RegisterMessageRoutes(rg *gin.RouterGroup, messageService portssvc.MessageSvcFacade, readLedger portssvc.ReadLedgerSvcFacade) {
	h := newMessageHandler(messageService, readLedger)

	workspaceMessages := rg.Group("/workspaces/:workspace_id")
	{
		workspaceMessages.POST("/messages", h.sendMessage)
		workspaceMessages.GET("/messages", h.listMessages)
		workspaceMessages.GET("/messages/search", h.searchMessages)
		workspaceMessages.POST("/reads", h.markRead)
	}

	messages := rg.Group("/messages/:message_id")
	{
		messages.PATCH("", h.editMessage)
		messages.DELETE("", h.deleteMessage)
	}
}

// sendMessage godoc
// @Summary Send a message
// @Description Posts a text or media message to the workspace. The sender has read it.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   message body dto.SendMessageRequest true "Message body"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid message"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/messages [post]
func (h *messageHandler) sendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SendMessage")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	message, err := h.messageService.SendMessage(c.Request.Context(), c.Param("workspace_id"), userID, req.ToBody())
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(message))
}

// listMessages godoc
// @Summary List workspace messages
// @Description Returns messages newest first, deleted ones as tombstones, each flagged with
// @Description whether every active member has read it. Returned messages count as read by the caller.
// @Tags messages
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   offset query int false "Offset"
// @Param   limit query int false "Page size (max 100)"
// @Success 200 {object} dto.Page[dto.MessageResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid paging"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/messages [get]
func (h *messageHandler) listMessages(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "ListMessages query")
		return
	}
	window, err := pagination.Normalize(q.Window())
	if err != nil {
		respondError(c, err, "Invalid paging for messages")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	views, total, err := h.messageService.ListMessages(c.Request.Context(), c.Param("workspace_id"), userID, window)
	if err != nil {
		respondError(c, err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.ToMessageViewResponses(views), total, window))
}

// searchMessages godoc
// @Summary Search workspace messages
// @Description Filters non-deleted messages by sender, media type and text.
// @Tags messages
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   senderID query string false "Sender user ID"
// @Param   mediaType query string false "text, audio, video or image"
// @Param   text query string false "Case-insensitive text fragment"
// @Param   offset query int false "Offset"
// @Param   limit query int false "Page size (max 100)"
// @Success 200 {object} dto.Page[dto.MessageResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/messages/search [get]
func (h *messageHandler) searchMessages(c *gin.Context) {
	var q dto.SearchMessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "SearchMessages query")
		return
	}
	window, err := pagination.Normalize(q.Window())
	if err != nil {
		respondError(c, err, "Invalid paging for message search")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	messages, total, err := h.messageService.SearchMessages(c.Request.Context(), c.Param("workspace_id"), userID, domain.MessageFilter{
		SenderID:     q.SenderID,
		MediaType:    domain.MediaType(q.MediaType),
		TextContains: q.Text,
		Window:       window,
	})
	if err != nil {
		respondError(c, err, "Failed to search messages")
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.ToMessageResponses(messages), total, window))
}

// markRead godoc
// @Summary Mark messages as read
// @Description Records read receipts for the caller. Already-read messages are skipped.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   reads body dto.MarkReadRequest true "Message IDs"
// @Success 200 {object} dto.MarkReadResponse
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Message not in workspace"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reads [post]
func (h *messageHandler) markRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "MarkRead")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	recorded, err := h.readLedger.MarkRead(c.Request.Context(), c.Param("workspace_id"), userID, req.MessageIDs)
	if err != nil {
		respondError(c, err, "Failed to mark messages read")
		return
	}
	c.JSON(http.StatusOK, dto.MarkReadResponse{Recorded: recorded})
}

// editMessage godoc
// @Summary Edit a message
// @Description The sender may replace the text of a text message within the edit window.
// @Tags messages
// @Accept  json
// @Produce  json
// @Param   message_id path string true "Message ID"
// @Param   edit body dto.EditMessageRequest true "New text"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Empty text"
// @Failure 403 {object} dto.ErrorResponse "Not the sender, deleted, not text or time limit exceeded"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Security BearerAuth
// @Router /messages/{message_id} [patch]
func (h *messageHandler) editMessage(c *gin.Context) {
	var req dto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "EditMessage")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	message, err := h.messageService.EditMessage(c.Request.Context(), c.Param("message_id"), userID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to edit message")
		return
	}
	c.JSON(http.StatusOK, dto.ToMessageResponse(message))
}

// deleteMessage godoc
// @Summary Delete a message
// @Description Soft-deletes a message. Only its sender may do so.
// @Tags messages
// @Param   message_id path string true "Message ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the sender or already deleted"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Security BearerAuth
// @Router /messages/{message_id} [delete]
func (h *messageHandler) deleteMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	messageID := c.Param("message_id")
	if _, err := h.messageService.DeleteMessage(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err, "Failed to delete message")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Message deleted", slog.String("message_id", messageID))
	c.Status(http.StatusNoContent)
}
