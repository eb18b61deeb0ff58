package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_chat_app/internal/core/ports/services"
	"github.com/SscSPs/workspace_chat_app/internal/dto"
	"github.com/SscSPs/workspace_chat_app/internal/middleware"
	"github.com/SscSPs/workspace_chat_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests that change or read a workspace roster.
type memberHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

func registerMemberRoutes(workspaceSpecific *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := &memberHandler{membershipService: membershipService}

	members := workspaceSpecific.Group("/members")
	{
		members.POST("", h.addMember)
		members.GET("", h.listMembers)
		members.DELETE("/:user_id", h.removeMember)
	}
	workspaceSpecific.PUT("/memberships/:membership_id/role", h.toggleRole)
}

// addMember godoc
// @Summary Add a member or join
// @Description Adds userID to the workspace. Without a body the caller joins a public workspace.
// @Description A previously removed member is reactivated as a plain member.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   member body dto.AddMemberRequest false "User to add"
// @Success 201 {object} dto.MembershipResponse
// @Failure 403 {object} dto.ErrorResponse "Not allowed to add members"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Failure 409 {object} dto.ErrorResponse "Already an active member"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [post]
func (h *memberHandler) addMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err, "AddMember")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	membership, err := h.membershipService.AddMember(c.Request.Context(), c.Param("workspace_id"), userID, req.UserID)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}

// listMembers godoc
// @Summary List workspace members
// @Tags members
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   offset query int false "Offset"
// @Param   limit query int false "Page size (max 100)"
// @Param   includeRemoved query bool false "Include removed memberships"
// @Success 200 {object} dto.Page[dto.MembershipResponse]
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	var q dto.ListMembersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "ListMembers query")
		return
	}
	window, err := pagination.Normalize(q.Window())
	if err != nil {
		respondError(c, err, "Invalid paging for members")
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	members, total, err := h.membershipService.ListMembers(c.Request.Context(), c.Param("workspace_id"), userID, domain.MemberFilter{
		IncludeRemoved: q.IncludeRemoved,
		Window:         window,
	})
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.ToMembershipResponses(members), total, window))
}

// removeMember godoc
// @Summary Remove a member or leave
// @Description Removing yourself leaves the workspace. A leaving last admin hands the role to a random member.
// @Tags members
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "User to remove"
// @Success 200 {object} dto.RemoveMemberResponse
// @Failure 403 {object} dto.ErrorResponse "Not allowed to remove this member"
// @Failure 404 {object} dto.ErrorResponse "Workspace or membership not found"
// @Failure 409 {object} dto.ErrorResponse "Last member cannot leave"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *memberHandler) removeMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")
	targetUserID := c.Param("user_id")

	promoted, err := h.membershipService.RemoveMember(c.Request.Context(), workspaceID, userID, targetUserID)
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	resp := dto.RemoveMemberResponse{}
	if promoted != nil {
		p := dto.ToMembershipResponse(promoted)
		resp.PromotedAdmin = &p
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Admin handed off on removal",
			slog.String("workspace_id", workspaceID),
			slog.String("promoted_user_id", promoted.UserID))
	}
	c.JSON(http.StatusOK, resp)
}

// toggleRole godoc
// @Summary Toggle a member's role
// @Description Promotes a member to admin or demotes an admin. The last admin cannot be demoted.
// @Tags members
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   membership_id path string true "Membership ID"
// @Success 200 {object} dto.MembershipResponse
// @Failure 403 {object} dto.ErrorResponse "Not an admin, or last admin"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/memberships/{membership_id}/role [put]
func (h *memberHandler) toggleRole(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	membership, err := h.membershipService.ToggleRole(c.Request.Context(), c.Param("workspace_id"), userID, c.Param("membership_id"))
	if err != nil {
		respondError(c, err, "Failed to toggle role")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}
