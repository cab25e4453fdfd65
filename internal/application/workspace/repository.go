package workspace

import (
	"context"

	"github.com/taskverse/taskverse/internal/domain"
)

// Repository defines storage operations for workspaces, memberships and
// invitations. Operations touching two aggregates (workspace plus owner
// membership, acceptance plus membership) are transactional.
type Repository interface {
	// CreateWorkspace persists a workspace and its owner membership in one
	// transaction.
	CreateWorkspace(ctx context.Context, ws *domain.Workspace, owner *domain.Member) (*domain.Workspace, error)

	// FindWorkspaceByID retrieves a workspace.
	// Returns domain.ErrWorkspaceNotFound if it doesn't exist.
	FindWorkspaceByID(ctx context.Context, id string) (*domain.Workspace, error)

	// ListWorkspacesForUser retrieves every workspace the user is a member of.
	ListWorkspacesForUser(ctx context.Context, userID string) ([]domain.Workspace, error)

	// ListMembers retrieves a workspace's members.
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)

	// IsMember reports whether the user belongs to the workspace.
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)

	// HasMemberWithEmail reports whether any member has the given email.
	HasMemberWithEmail(ctx context.Context, workspaceID, email string) (bool, error)

	// CreateInvitation persists a pending invitation.
	CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)

	// FindInvitationByID retrieves an invitation.
	// Returns domain.ErrInvitationNotFound if it doesn't exist.
	FindInvitationByID(ctx context.Context, id string) (*domain.Invitation, error)

	// ListPendingInvitations retrieves pending invitations addressed to the
	// email, newest first.
	ListPendingInvitations(ctx context.Context, email string) ([]domain.Invitation, error)

	// AcceptInvitation flips the invitation to accepted and adds the member
	// in one transaction.
	AcceptInvitation(ctx context.Context, invitationID string, member *domain.Member) error

	// DeclineInvitation flips the invitation to declined.
	DeclineInvitation(ctx context.Context, invitationID string) error
}
