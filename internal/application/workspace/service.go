package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

// Service provides business logic for shared workspaces: creation,
// membership and the invitation flow.
type Service struct {
	repo  Repository
	clock clock.Clock
}

// NewService creates a workspace service. A nil clk falls back to the
// system clock.
func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{repo: repo, clock: clk}
}

// Create makes a new workspace owned by the caller. The owner membership is
// written in the same transaction so a workspace is never member-less.
func (s *Service) Create(ctx context.Context, ownerID, ownerEmail, name, description string) (*domain.Workspace, error) {
	title, err := domain.NewTitle(name)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate workspace id: %w", err)
	}

	ws := &domain.Workspace{
		ID:          id.String(),
		Name:        title.String(),
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   s.clock.Now().UTC(),
	}
	owner := &domain.Member{
		WorkspaceID: ws.ID,
		UserID:      ownerID,
		Email:       ownerEmail,
		Role:        domain.MemberRoleOwner,
	}

	created, err := s.repo.CreateWorkspace(ctx, ws, owner)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return created, nil
}

// List returns the workspaces the user belongs to.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Workspace, error) {
	workspaces, err := s.repo.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// Members returns a workspace's member list. Only members may see it.
func (s *Service) Members(ctx context.Context, workspaceID, callerID string) ([]domain.Member, error) {
	if err := s.requireMember(ctx, workspaceID, callerID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// RequireMember verifies the caller belongs to the workspace. Other
// services use it to gate access to workspace-scoped task operations.
func (s *Service) RequireMember(ctx context.Context, workspaceID, callerID string) error {
	return s.requireMember(ctx, workspaceID, callerID)
}

// Invite creates a pending invitation to the workspace. The invitee is
// identified by email; inviting someone who is already a member fails with
// domain.ErrAlreadyMember.
func (s *Service) Invite(ctx context.Context, workspaceID, callerID, callerEmail, inviteeEmail string) (*domain.Invitation, error) {
	if err := s.requireMember(ctx, workspaceID, callerID); err != nil {
		return nil, err
	}

	ws, err := s.repo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("find workspace: %w", err)
	}

	alreadyMember, err := s.repo.HasMemberWithEmail(ctx, workspaceID, inviteeEmail)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if alreadyMember {
		return nil, domain.ErrAlreadyMember
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate invitation id: %w", err)
	}

	inv := &domain.Invitation{
		ID:            id.String(),
		WorkspaceID:   workspaceID,
		WorkspaceName: ws.Name,
		InviteeEmail:  inviteeEmail,
		InviterEmail:  callerEmail,
		Status:        domain.InvitationPending,
		CreatedAt:     s.clock.Now().UTC(),
	}

	created, err := s.repo.CreateInvitation(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return created, nil
}

// PendingInvitations returns the caller's open invitations.
func (s *Service) PendingInvitations(ctx context.Context, email string) ([]domain.Invitation, error) {
	invitations, err := s.repo.ListPendingInvitations(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

// Accept joins the caller to the invitation's workspace. The membership
// insert and the status flip happen in one transaction.
func (s *Service) Accept(ctx context.Context, invitationID, callerID, callerEmail string) error {
	inv, err := s.loadOpenInvitation(ctx, invitationID, callerEmail)
	if err != nil {
		return err
	}

	member := &domain.Member{
		WorkspaceID: inv.WorkspaceID,
		UserID:      callerID,
		Email:       callerEmail,
		Role:        domain.MemberRoleMember,
	}
	if err := s.repo.AcceptInvitation(ctx, invitationID, member); err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	return nil
}

// Decline marks the invitation declined.
func (s *Service) Decline(ctx context.Context, invitationID, callerEmail string) error {
	if _, err := s.loadOpenInvitation(ctx, invitationID, callerEmail); err != nil {
		return err
	}
	if err := s.repo.DeclineInvitation(ctx, invitationID); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	return nil
}

func (s *Service) loadOpenInvitation(ctx context.Context, invitationID, callerEmail string) (*domain.Invitation, error) {
	inv, err := s.repo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if inv.Status != domain.InvitationPending {
		return nil, domain.ErrInvitationNotOpen
	}
	if inv.InviteeEmail != callerEmail {
		return nil, domain.ErrInvitationForbidden
	}
	return inv, nil
}

func (s *Service) requireMember(ctx context.Context, workspaceID, callerID string) error {
	isMember, err := s.repo.IsMember(ctx, workspaceID, callerID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return domain.ErrNotWorkspaceMember
	}
	return nil
}
