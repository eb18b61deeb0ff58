package dto

import (
	"time"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Type     string  `json:"type" binding:"omitempty,workspacetype"`
	ImageURL *string `json:"imageURL" binding:"omitempty,url"`
}

// UpdateWorkspaceRequest carries the settings to change. Omitted fields stay as they are;
// an empty imageURL clears the image.
type UpdateWorkspaceRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Type     *string `json:"type" binding:"omitempty,workspacetype"`
	ImageURL *string `json:"imageURL" binding:"omitempty,url|len=0"`
}

// ToSettings converts the request into domain settings.
func (r UpdateWorkspaceRequest) ToSettings() domain.WorkspaceSettings {
	settings := domain.WorkspaceSettings{Name: r.Name, ImageURL: r.ImageURL}
	if r.Type != nil {
		t := domain.WorkspaceType(*r.Type)
		settings.Type = &t
	}
	return settings
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID   string    `json:"workspaceID"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	CreatorID     string    `json:"creatorID"`
	ImageURL      *string   `json:"imageURL,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:   w.WorkspaceID,
		Name:          w.Name,
		Type:          string(w.Type),
		CreatorID:     w.CreatorID,
		ImageURL:      w.ImageURL,
		CreatedAt:     w.CreatedAt,
		LastUpdatedAt: w.LastUpdatedAt,
	}
}

// ToWorkspaceResponses converts a slice of domain.Workspace to DTOs.
func ToWorkspaceResponses(ws []domain.Workspace) []WorkspaceResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkspaceResponse(&ws[i])
	}
	return list
}

// UserWorkspaceResponse is a workspace from the caller's point of view.
type UserWorkspaceResponse struct {
	WorkspaceResponse
	Role        string    `json:"role"`
	UnreadCount int       `json:"unreadCount"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ListUserWorkspacesResponse wraps the caller's workspaces.
type ListUserWorkspacesResponse struct {
	Workspaces []UserWorkspaceResponse `json:"workspaces"`
}

// ToListUserWorkspacesResponse converts summaries to DTO.
func ToListUserWorkspacesResponse(summaries []domain.WorkspaceSummary) ListUserWorkspacesResponse {
	list := make([]UserWorkspaceResponse, len(summaries))
	for i := range summaries {
		list[i] = UserWorkspaceResponse{
			WorkspaceResponse: ToWorkspaceResponse(&summaries[i].Workspace),
			Role:              string(summaries[i].Role),
			UnreadCount:       summaries[i].UnreadCount,
			JoinedAt:          summaries[i].JoinedAt,
		}
	}
	return ListUserWorkspacesResponse{Workspaces: list}
}
