package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskverse/taskverse/internal/application/export"
	"github.com/taskverse/taskverse/internal/application/note"
	"github.com/taskverse/taskverse/internal/application/schedule"
	"github.com/taskverse/taskverse/internal/application/task"
	"github.com/taskverse/taskverse/internal/application/template"
	"github.com/taskverse/taskverse/internal/application/workspace"
	"github.com/taskverse/taskverse/internal/auth"
	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

var testIdentity = auth.Identity{UserID: "user-1", Email: "user1@example.com"}

// memTaskRepo is an in-memory task.Repository.
type memTaskRepo struct {
	tasks map[domain.Scope][]domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[domain.Scope][]domain.Task)}
}

func (m *memTaskRepo) CreateTask(_ context.Context, scope domain.Scope, t *domain.Task) (*domain.Task, error) {
	m.tasks[scope] = append(m.tasks[scope], *t)
	return t, nil
}

func (m *memTaskRepo) CreateTasks(ctx context.Context, scope domain.Scope, tasks []*domain.Task) error {
	for _, t := range tasks {
		if _, err := m.CreateTask(ctx, scope, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *memTaskRepo) FindTaskByID(_ context.Context, scope domain.Scope, id string) (*domain.Task, error) {
	for i := range m.tasks[scope] {
		if m.tasks[scope][i].ID == id {
			t := m.tasks[scope][i]
			return &t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memTaskRepo) ListTasks(_ context.Context, scope domain.Scope) ([]domain.Task, error) {
	return append([]domain.Task(nil), m.tasks[scope]...), nil
}

func (m *memTaskRepo) UpdateTask(_ context.Context, scope domain.Scope, params domain.UpdateTaskParams) (*domain.Task, error) {
	for i := range m.tasks[scope] {
		t := &m.tasks[scope][i]
		if t.ID != params.TaskID {
			continue
		}
		if params.Title != nil {
			t.Title = params.Title.String()
		}
		if params.Status != nil {
			t.Status = *params.Status
		}
		if params.Priority != nil {
			t.Priority = *params.Priority
		}
		if params.CompletedAt != nil {
			t.CompletedAt = params.CompletedAt
		} else if params.ClearCompletedAt {
			t.CompletedAt = nil
		}
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memTaskRepo) DeleteTask(_ context.Context, scope domain.Scope, id string) error {
	for i := range m.tasks[scope] {
		if m.tasks[scope][i].ID == id {
			m.tasks[scope] = append(m.tasks[scope][:i], m.tasks[scope][i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (m *memTaskRepo) DeleteAllTasks(_ context.Context, scope domain.Scope) (int64, error) {
	count := int64(len(m.tasks[scope]))
	m.tasks[scope] = nil
	return count, nil
}

func (m *memTaskRepo) BatchWriteTasks(_ context.Context, scope domain.Scope, writes []domain.TaskWrite) error {
	for _, write := range writes {
		found := false
		for i := range m.tasks[scope] {
			if m.tasks[scope][i].ID == write.TaskID {
				m.tasks[scope][i].OrderRank = write.OrderRank
				m.tasks[scope][i].Priority = write.Priority
				found = true
				break
			}
		}
		if !found {
			return domain.ErrTaskNotFound
		}
	}
	return nil
}

// memWorkspaceRepo is an in-memory workspace.Repository with a single
// workspace and fixed membership.
type memWorkspaceRepo struct {
	workspaces  map[string]domain.Workspace
	members     map[string][]domain.Member
	invitations map[string]domain.Invitation
}

func newMemWorkspaceRepo() *memWorkspaceRepo {
	return &memWorkspaceRepo{
		workspaces:  make(map[string]domain.Workspace),
		members:     make(map[string][]domain.Member),
		invitations: make(map[string]domain.Invitation),
	}
}

func (m *memWorkspaceRepo) CreateWorkspace(_ context.Context, ws *domain.Workspace, owner *domain.Member) (*domain.Workspace, error) {
	m.workspaces[ws.ID] = *ws
	m.members[ws.ID] = append(m.members[ws.ID], *owner)
	return ws, nil
}

func (m *memWorkspaceRepo) FindWorkspaceByID(_ context.Context, id string) (*domain.Workspace, error) {
	ws, ok := m.workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return &ws, nil
}

func (m *memWorkspaceRepo) ListWorkspacesForUser(_ context.Context, userID string) ([]domain.Workspace, error) {
	var out []domain.Workspace
	for id, members := range m.members {
		for _, member := range members {
			if member.UserID == userID {
				out = append(out, m.workspaces[id])
			}
		}
	}
	return out, nil
}

func (m *memWorkspaceRepo) ListMembers(_ context.Context, workspaceID string) ([]domain.Member, error) {
	return m.members[workspaceID], nil
}

func (m *memWorkspaceRepo) IsMember(_ context.Context, workspaceID, userID string) (bool, error) {
	for _, member := range m.members[workspaceID] {
		if member.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memWorkspaceRepo) HasMemberWithEmail(_ context.Context, workspaceID, email string) (bool, error) {
	for _, member := range m.members[workspaceID] {
		if member.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memWorkspaceRepo) CreateInvitation(_ context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	m.invitations[inv.ID] = *inv
	return inv, nil
}

func (m *memWorkspaceRepo) FindInvitationByID(_ context.Context, id string) (*domain.Invitation, error) {
	inv, ok := m.invitations[id]
	if !ok {
		return nil, domain.ErrInvitationNotFound
	}
	return &inv, nil
}

func (m *memWorkspaceRepo) ListPendingInvitations(_ context.Context, email string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for _, inv := range m.invitations {
		if inv.InviteeEmail == email && inv.Status == domain.InvitationPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memWorkspaceRepo) AcceptInvitation(_ context.Context, invitationID string, member *domain.Member) error {
	inv := m.invitations[invitationID]
	inv.Status = domain.InvitationAccepted
	m.invitations[invitationID] = inv
	m.members[member.WorkspaceID] = append(m.members[member.WorkspaceID], *member)
	return nil
}

func (m *memWorkspaceRepo) DeclineInvitation(_ context.Context, invitationID string) error {
	inv := m.invitations[invitationID]
	inv.Status = domain.InvitationDeclined
	m.invitations[invitationID] = inv
	return nil
}

// memNoteRepo is an in-memory note.Repository.
type memNoteRepo struct {
	notes []domain.Note
}

func (m *memNoteRepo) CreateNote(_ context.Context, n *domain.Note) (*domain.Note, error) {
	m.notes = append(m.notes, *n)
	return n, nil
}

func (m *memNoteRepo) ListNotes(_ context.Context, ownerID string) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNoteRepo) UpdateNote(_ context.Context, ownerID string, params domain.UpdateNoteParams) (*domain.Note, error) {
	for i := range m.notes {
		if m.notes[i].ID == params.NoteID && m.notes[i].OwnerID == ownerID {
			if params.Content != nil {
				m.notes[i].Content = *params.Content
			}
			n := m.notes[i]
			return &n, nil
		}
	}
	return nil, domain.ErrNoteNotFound
}

func (m *memNoteRepo) DeleteNote(_ context.Context, ownerID, id string) error {
	for i := range m.notes {
		if m.notes[i].ID == id && m.notes[i].OwnerID == ownerID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoteNotFound
}

func (m *memNoteRepo) DeleteAllNotes(_ context.Context, ownerID string) (int64, error) {
	var kept []domain.Note
	var deleted int64
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.notes = kept
	return deleted, nil
}

// memScheduleRepo is an in-memory schedule.Repository.
type memScheduleRepo struct {
	entries []domain.Schedule
}

func (m *memScheduleRepo) CreateSchedule(_ context.Context, entry *domain.Schedule) (*domain.Schedule, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *memScheduleRepo) ListSchedules(_ context.Context, ownerID string) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, entry := range m.entries {
		if entry.OwnerID == ownerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memScheduleRepo) UpdateSchedule(_ context.Context, ownerID string, params domain.UpdateScheduleParams) (*domain.Schedule, error) {
	for i := range m.entries {
		if m.entries[i].ID == params.ScheduleID && m.entries[i].OwnerID == ownerID {
			if params.CourseName != nil {
				m.entries[i].CourseName = *params.CourseName
			}
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, domain.ErrScheduleNotFound
}

func (m *memScheduleRepo) DeleteSchedule(_ context.Context, ownerID, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id && m.entries[i].OwnerID == ownerID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

func (m *memScheduleRepo) DeleteAllSchedules(_ context.Context, ownerID string) (int64, error) {
	count := int64(len(m.entries))
	m.entries = nil
	return count, nil
}

// memTemplateRepo is an in-memory template.Repository.
type memTemplateRepo struct {
	templates []domain.Template
}

func (m *memTemplateRepo) CreateTemplate(_ context.Context, tpl *domain.Template) (*domain.Template, error) {
	m.templates = append(m.templates, *tpl)
	return tpl, nil
}

func (m *memTemplateRepo) FindTemplateByID(_ context.Context, id string) (*domain.Template, error) {
	for i := range m.templates {
		if m.templates[i].ID == id {
			tpl := m.templates[i]
			return &tpl, nil
		}
	}
	return nil, domain.ErrTemplateNotFound
}

func (m *memTemplateRepo) ListPublishedTemplates(_ context.Context) ([]domain.Template, error) {
	var out []domain.Template
	for _, tpl := range m.templates {
		if tpl.Published {
			out = append(out, tpl)
		}
	}
	return out, nil
}

// memBlobStore is an in-memory export.BlobStore.
type memBlobStore struct {
	blobs map[string][]byte
}

func (m *memBlobStore) Put(_ context.Context, name string, data []byte) error {
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[name] = data
	return nil
}

func (m *memBlobStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range m.blobs {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	return names, nil
}

// stubTagger is a canned TagSuggester.
type stubTagger struct {
	tags []string
	err  error
}

func (s *stubTagger) SuggestTags(context.Context, string) ([]string, error) {
	return s.tags, s.err
}

type fixture struct {
	api       *API
	router    http.Handler
	taskRepo  *memTaskRepo
	wsRepo    *memWorkspaceRepo
	tagger    *stubTagger
	blobStore *memBlobStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.Fixed{Instant: testNow}
	taskRepo := newMemTaskRepo()
	wsRepo := newMemWorkspaceRepo()
	noteRepo := &memNoteRepo{}
	scheduleRepo := &memScheduleRepo{}
	templateRepo := &memTemplateRepo{}
	blobStore := &memBlobStore{}
	tagger := &stubTagger{tags: []string{"work", "urgent"}}

	api := NewAPI(
		task.NewService(taskRepo, clk),
		workspace.NewService(wsRepo, clk),
		note.NewService(noteRepo, clk),
		schedule.NewService(scheduleRepo),
		template.NewService(templateRepo, clk),
		export.NewService(blobStore, taskRepo, noteRepo, scheduleRepo, clk),
		tagger,
	)

	// Every request runs as testIdentity, the way the auth middleware would
	// populate it.
	router := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.Routes().ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), testIdentity)))
	})

	return &fixture{
		api:       api,
		router:    router,
		taskRepo:  taskRepo,
		wsRepo:    wsRepo,
		tagger:    tagger,
		blobStore: blobStore,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateAndListTasks(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/tasks", map[string]any{
		"title":   "Write report",
		"dueDate": "2026-03-20T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)["task"].(map[string]any)
	assert.Equal(t, "Write report", created["title"])
	assert.Equal(t, "Pending", created["status"])
	assert.Equal(t, "Medium", created["priority"])
	assert.Equal(t, float64(1), created["orderRank"])

	rec = f.do(t, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decodeBody(t, rec)["tasks"].([]any)
	assert.Len(t, tasks, 1)
}

func TestCreateTaskAcceptsSecondsNanosTimestamp(t *testing.T) {
	f := newFixture(t)

	due := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	rec := f.do(t, http.MethodPost, "/tasks", map[string]any{
		"title":   "Legacy client",
		"dueDate": map[string]any{"seconds": due.Unix(), "nanos": 0},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)["task"].(map[string]any)
	assert.Equal(t, "2026-03-20T10:00:00Z", created["dueDate"])
}

func TestCreateTaskInvalidTitle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/tasks", map[string]any{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"].(map[string]any)["code"])
}

func TestSearchQueryFiltersTasks(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"Buy groceries", "Write report"} {
		rec := f.do(t, http.MethodPost, "/tasks", map[string]any{
			"title":   title,
			"dueDate": "2026-03-20T10:00:00Z",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/tasks?q=report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decodeBody(t, rec)["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].(map[string]any)["title"])
}

func TestCompleteTaskStampsCompletedAt(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/tasks", map[string]any{
		"title":   "Finish thesis",
		"dueDate": "2026-03-20T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["task"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPatch, "/tasks/"+id, map[string]any{"status": "Completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)["task"].(map[string]any)
	assert.Equal(t, "Completed", updated["status"])
	assert.Equal(t, testNow.Format(time.RFC3339), updated["completedAt"])
}

func TestReorderAssignsPriorityBands(t *testing.T) {
	f := newFixture(t)

	var ids []string
	for i := 0; i < 7; i++ {
		rec := f.do(t, http.MethodPost, "/tasks", map[string]any{
			"title":   "Task",
			"dueDate": "2026-03-20T10:00:00Z",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decodeBody(t, rec)["task"].(map[string]any)["id"].(string))
	}

	rec := f.do(t, http.MethodPost, "/tasks:reorder", map[string]any{"taskIds": ids})
	require.Equal(t, http.StatusNoContent, rec.Code)

	scope := domain.UserScope(testIdentity.UserID)
	stored, err := f.taskRepo.ListTasks(context.Background(), scope)
	require.NoError(t, err)
	byID := make(map[string]domain.Task, len(stored))
	for _, task := range stored {
		byID[task.ID] = task
	}
	assert.Equal(t, domain.TaskPriorityHigh, byID[ids[0]].Priority)
	assert.Equal(t, domain.TaskPriorityMedium, byID[ids[3]].Priority)
	assert.Equal(t, domain.TaskPriorityLow, byID[ids[6]].Priority)
	assert.Equal(t, 6, byID[ids[6]].OrderRank)
}

func TestWorkspaceTaskRequiresMembership(t *testing.T) {
	f := newFixture(t)

	// Workspace owned by someone else; the test identity is not a member.
	other := &domain.Workspace{ID: "ws-1", Name: "Team", OwnerID: "user-2", CreatedAt: testNow}
	owner := &domain.Member{WorkspaceID: "ws-1", UserID: "user-2", Email: "owner@example.com", Role: domain.MemberRoleOwner}
	_, err := f.wsRepo.CreateWorkspace(context.Background(), other, owner)
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/workspaces/ws-1/tasks", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInvitationFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/workspaces", map[string]any{"name": "Team Alpha"})
	require.Equal(t, http.StatusCreated, rec.Code)
	wsID := decodeBody(t, rec)["workspace"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPost, "/workspaces/"+wsID+"/invitations", map[string]any{
		"email": "invitee@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	inv := decodeBody(t, rec)["invitation"].(map[string]any)
	assert.Equal(t, "pending", inv["status"])
	assert.Equal(t, "Team Alpha", inv["workspaceName"])

	// Inviting an existing member conflicts.
	rec = f.do(t, http.MethodPost, "/workspaces/"+wsID+"/invitations", map[string]any{
		"email": testIdentity.Email,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSuggestTags(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/tags:suggest", map[string]any{
		"description": "Prepare quarterly budget review",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decodeBody(t, rec)["tags"].([]any)
	assert.Equal(t, []any{"work", "urgent"}, tags)
}

func TestSuggestTagsUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.tagger.tags = nil
	f.tagger.err = errors.New("completion api returned 500")

	rec := f.do(t, http.MethodPost, "/tags:suggest", map[string]any{
		"description": "anything",
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decodeBody(t, rec)["error"].(map[string]any)["code"])
}

func TestCreateNoteRejectsBlankContent(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/notes", map[string]any{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyBuiltinTemplate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/templates/default-0:apply", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	tasks := decodeBody(t, rec)["tasks"].([]any)
	require.NotEmpty(t, tasks)

	first := tasks[0].(map[string]any)
	assert.Equal(t, float64(1), first["orderRank"])
	assert.Equal(t, "Pending", first["status"])
}

func TestExportRoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/notes", map[string]any{"content": "remember this"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/export", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	name := decodeBody(t, rec)["name"].(string)
	assert.Contains(t, name, "exports/"+testIdentity.UserID+"/")

	rec = f.do(t, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exports := decodeBody(t, rec)["exports"].([]any)
	assert.Equal(t, []any{name}, exports)
}
