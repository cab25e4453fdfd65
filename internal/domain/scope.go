package domain

// ScopeKind distinguishes personal task collections from shared ones.
type ScopeKind string

const (
	ScopeKindUser      ScopeKind = "user"
	ScopeKindWorkspace ScopeKind = "workspace"
)

// Scope identifies the task collection an operation targets: a user's
// personal collection or a workspace's shared one.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// UserScope returns the personal scope for a user.
func UserScope(userID string) Scope {
	return Scope{Kind: ScopeKindUser, ID: userID}
}

// WorkspaceScope returns the shared scope for a workspace.
func WorkspaceScope(workspaceID string) Scope {
	return Scope{Kind: ScopeKindWorkspace, ID: workspaceID}
}
