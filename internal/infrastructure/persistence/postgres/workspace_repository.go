package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskverse/taskverse/internal/domain"
)

// CreateWorkspace persists the workspace and its owner membership together.
func (s *Store) CreateWorkspace(ctx context.Context, ws *domain.Workspace, owner *domain.Member) (*domain.Workspace, error) {
	var created *domain.Workspace
	err := s.atomic(ctx, "create_workspace", func(txStore *Store) error {
		row := txStore.db.QueryRow(ctx, `
			INSERT INTO workspaces (id, name, description, owner_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, name, description, owner_id, created_at`,
			ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt,
		)

		var stored domain.Workspace
		if err := row.Scan(&stored.ID, &stored.Name, &stored.Description, &stored.OwnerID, &stored.CreatedAt); err != nil {
			return fmt.Errorf("insert workspace: %w", err)
		}

		_, err := txStore.db.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, email, role)
			VALUES ($1, $2, $3, $4)`,
			owner.WorkspaceID, owner.UserID, owner.Email, owner.Role,
		)
		if err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}

		created = &stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindWorkspaceByID retrieves a workspace.
func (s *Store) FindWorkspaceByID(ctx context.Context, id string) (*domain.Workspace, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, owner_id, created_at
		FROM workspaces
		WHERE id = $1`, id,
	)

	var ws domain.Workspace
	err := row.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	return &ws, nil
}

// ListWorkspacesForUser retrieves every workspace the user belongs to.
func (s *Store) ListWorkspacesForUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.id, w.name, w.description, w.owner_id, w.created_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.created_at, w.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.OwnerID, &ws.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return workspaces, nil
}

// ListMembers retrieves a workspace's members, owner first.
func (s *Store) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT workspace_id, user_id, email, role
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY role, email`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.Email, &m.Role); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the workspace.
func (s *Store) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
		)`, workspaceID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// HasMemberWithEmail reports whether any member has the given email.
func (s *Store) HasMemberWithEmail(ctx context.Context, workspaceID, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND lower(email) = lower($2)
		)`, workspaceID, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check member email: %w", err)
	}
	return exists, nil
}

// CreateInvitation persists a pending invitation.
func (s *Store) CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO workspace_invitations
			(id, workspace_id, workspace_name, invitee_email, inviter_email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, workspace_id, workspace_name, invitee_email, inviter_email, status, created_at`,
		inv.ID, inv.WorkspaceID, inv.WorkspaceName, inv.InviteeEmail, inv.InviterEmail, inv.Status, inv.CreatedAt,
	)

	stored, err := scanInvitation(row)
	if err != nil {
		return nil, fmt.Errorf("insert invitation: %w", err)
	}
	return stored, nil
}

// FindInvitationByID retrieves an invitation.
func (s *Store) FindInvitationByID(ctx context.Context, id string) (*domain.Invitation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, workspace_id, workspace_name, invitee_email, inviter_email, status, created_at
		FROM workspace_invitations
		WHERE id = $1`, id,
	)

	inv, err := scanInvitation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return inv, nil
}

// ListPendingInvitations retrieves pending invitations for the email, newest
// first.
func (s *Store) ListPendingInvitations(ctx context.Context, email string) ([]domain.Invitation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, workspace_id, workspace_name, invitee_email, inviter_email, status, created_at
		FROM workspace_invitations
		WHERE lower(invitee_email) = lower($1) AND status = $2
		ORDER BY created_at DESC`,
		email, domain.InvitationPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitations: %w", err)
	}
	return invitations, nil
}

// AcceptInvitation flips a still-pending invitation to accepted and adds the
// membership in one transaction. A concurrent accept or decline loses the
// status guard and surfaces as ErrInvitationNotOpen.
func (s *Store) AcceptInvitation(ctx context.Context, invitationID string, member *domain.Member) error {
	return s.atomic(ctx, "accept_invitation", func(txStore *Store) error {
		tag, err := txStore.db.Exec(ctx, `
			UPDATE workspace_invitations SET status = $1
			WHERE id = $2 AND status = $3`,
			domain.InvitationAccepted, invitationID, domain.InvitationPending,
		)
		if err != nil {
			return fmt.Errorf("accept invitation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrInvitationNotOpen
		}

		_, err = txStore.db.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, email, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (workspace_id, user_id) DO NOTHING`,
			member.WorkspaceID, member.UserID, member.Email, member.Role,
		)
		if err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
}

// DeclineInvitation flips a still-pending invitation to declined.
func (s *Store) DeclineInvitation(ctx context.Context, invitationID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE workspace_invitations SET status = $1
		WHERE id = $2 AND status = $3`,
		domain.InvitationDeclined, invitationID, domain.InvitationPending,
	)
	if err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvitationNotOpen
	}
	return nil
}

func scanInvitation(row pgx.Row) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := row.Scan(&inv.ID, &inv.WorkspaceID, &inv.WorkspaceName,
		&inv.InviteeEmail, &inv.InviterEmail, &inv.Status, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
