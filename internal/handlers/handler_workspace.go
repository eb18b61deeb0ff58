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

// workspaceHandler handles HTTP requests related to workspaces.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// RegisterWorkspaceRoutes registers workspace routes and the roster routes nested under them.
func RegisterWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade, membershipService portssvc.MembershipSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listUserWorkspaces)
		workspaces.GET("/public", h.listPublicWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspace_id")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PATCH("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)

		registerMemberRoutes(workspaceSpecific, membershipService)
	}
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a workspace and makes the caller its first admin.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create workspace"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateWorkspace")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, req.Name, domain.WorkspaceType(req.Type), req.ImageURL)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Workspace created", slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// listUserWorkspaces godoc
// @Summary List workspaces for current user
// @Description Lists the workspaces the caller is an active member of, with role and unread count.
// @Tags workspaces
// @Produce  json
// @Success 200 {object} dto.ListUserWorkspacesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list workspaces"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listUserWorkspaces(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	summaries, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserWorkspacesResponse(summaries))
}

// listPublicWorkspaces godoc
// @Summary Browse public workspaces
// @Tags workspaces
// @Produce  json
// @Param   offset query int false "Offset"
// @Param   limit query int false "Page size (max 100)"
// @Success 200 {object} dto.Page[dto.WorkspaceResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid paging"
// @Security BearerAuth
// @Router /workspaces/public [get]
func (h *workspaceHandler) listPublicWorkspaces(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "ListPublicWorkspaces query")
		return
	}
	window, err := pagination.Normalize(q.Window())
	if err != nil {
		respondError(c, err, "Invalid paging for public workspaces")
		return
	}

	workspaces, total, err := h.workspaceService.ListPublicWorkspaces(c.Request.Context(), window)
	if err != nil {
		respondError(c, err, "Failed to list public workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.ToWorkspaceResponses(workspaces), total, window))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Description Private workspaces are only visible to their members.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.FindWorkspaceByID(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// updateWorkspace godoc
// @Summary Update workspace settings
// @Description Admins may rename the workspace, switch its type or change its image.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   settings body dto.UpdateWorkspaceRequest true "Settings to change"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [patch]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateWorkspace")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspaceSettings(c.Request.Context(), c.Param("workspace_id"), userID, req.ToSettings())
	if err != nil {
		respondError(c, err, "Failed to update workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description The creator or an admin may delete a workspace. Memberships, messages and receipts go with it.
// @Tags workspaces
// @Param   workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Caller is neither creator nor admin"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), c.Param("workspace_id"), userID); err != nil {
		respondError(c, err, "Failed to delete workspace")
		return
	}
	c.Status(http.StatusNoContent)
}
