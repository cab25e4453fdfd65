package domain

import "time"

// MemberRole is a workspace membership role.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// Workspace is a shared task collection owned by one user.
type Workspace struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
}

// Member is a user's membership in a workspace.
type Member struct {
	WorkspaceID string
	UserID      string
	Email       string
	Role        MemberRole
}

// InvitationStatus is the lifecycle state of a workspace invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation asks a user, identified by email, to join a workspace.
// WorkspaceName is denormalized so pending invitations render without a
// workspace lookup.
type Invitation struct {
	ID            string
	WorkspaceID   string
	WorkspaceName string
	InviteeEmail  string
	InviterEmail  string
	Status        InvitationStatus
	CreatedAt     time.Time
}
