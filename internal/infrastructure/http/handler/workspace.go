package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/domain"
	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// POST /v1/workspaces
func (h *API) createWorkspace(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := h.workspaces.Create(r.Context(), identity.UserID, identity.Email, req.Name, req.Description)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "workspace created",
		"workspace_id", created.ID,
		"owner_id", identity.UserID)
	response.Created(w, map[string]any{"workspace": mapWorkspaceToDTO(created)})
}

// GET /v1/workspaces
func (h *API) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	workspaces, err := h.workspaces.List(r.Context(), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]workspaceDTO, len(workspaces))
	for i := range workspaces {
		dtos[i] = mapWorkspaceToDTO(&workspaces[i])
	}
	response.OK(w, map[string]any{"workspaces": dtos})
}

// GET /v1/workspaces/{workspaceID}/members
func (h *API) listMembers(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	members, err := h.workspaces.Members(r.Context(), chi.URLParam(r, "workspaceID"), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]memberDTO, len(members))
	for i, m := range members {
		dtos[i] = memberDTO{UserID: m.UserID, Email: m.Email, Role: string(m.Role)}
	}
	response.OK(w, map[string]any{"members": dtos})
}

// POST /v1/workspaces/{workspaceID}/invitations
func (h *API) createInvitation(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if req.Email == "" {
		response.ValidationError(w, "email", "required field missing")
		return
	}

	created, err := h.workspaces.Invite(r.Context(), chi.URLParam(r, "workspaceID"),
		identity.UserID, identity.Email, req.Email)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "invitation created",
		"invitation_id", created.ID,
		"workspace_id", created.WorkspaceID)
	response.Created(w, map[string]any{"invitation": mapInvitationToDTO(created)})
}

// GET /v1/invitations
func (h *API) listInvitations(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	invitations, err := h.workspaces.PendingInvitations(r.Context(), identity.Email)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]invitationDTO, len(invitations))
	for i := range invitations {
		dtos[i] = mapInvitationToDTO(&invitations[i])
	}
	response.OK(w, map[string]any{"invitations": dtos})
}

// POST /v1/invitations/{invitationID}:accept
func (h *API) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	invitationID := chi.URLParam(r, "invitationID")

	if err := h.workspaces.Accept(r.Context(), invitationID, identity.UserID, identity.Email); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "invitation accepted",
		"invitation_id", invitationID,
		"user_id", identity.UserID)
	response.OK(w, map[string]any{"status": string(domain.InvitationAccepted)})
}

// POST /v1/invitations/{invitationID}:decline
func (h *API) declineInvitation(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := h.workspaces.Decline(r.Context(), chi.URLParam(r, "invitationID"), identity.Email); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"status": string(domain.InvitationDeclined)})
}
