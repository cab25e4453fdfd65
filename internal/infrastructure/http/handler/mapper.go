package handler

import (
	"github.com/taskverse/taskverse/internal/domain"
)

// taskDTO is the JSON shape of a task. Timestamps marshal as RFC 3339 UTC
// strings but accept the legacy {seconds, nanos} encoding on input.
type taskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     domain.Timestamp  `json:"dueDate"`
	CreatedAt   domain.Timestamp  `json:"createdAt"`
	CompletedAt *domain.Timestamp `json:"completedAt,omitempty"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	Tags        []string          `json:"tags"`
	Subtasks    []subtaskDTO      `json:"subtasks"`
	Reminders   []string          `json:"reminders"`
	OrderRank   int               `json:"orderRank"`
}

type subtaskDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func mapTaskToDTO(t *domain.Task) taskDTO {
	dto := taskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     domain.Timestamp{Time: t.DueDate},
		CreatedAt:   domain.Timestamp{Time: t.CreatedAt},
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        emptyIfNil(t.Tags),
		Subtasks:    make([]subtaskDTO, len(t.Subtasks)),
		Reminders:   make([]string, len(t.Reminders)),
		OrderRank:   t.OrderRank,
	}
	if t.CompletedAt != nil {
		dto.CompletedAt = &domain.Timestamp{Time: *t.CompletedAt}
	}
	for i, st := range t.Subtasks {
		dto.Subtasks[i] = subtaskDTO{ID: st.ID, Text: st.Text, Completed: st.Completed}
	}
	for i, rem := range t.Reminders {
		dto.Reminders[i] = string(rem)
	}
	return dto
}

func mapTasksToDTO(tasks []domain.Task) []taskDTO {
	dtos := make([]taskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = mapTaskToDTO(&tasks[i])
	}
	return dtos
}

// riskTaskDTO extends the task shape with its risk score and tier.
type riskTaskDTO struct {
	taskDTO
	RiskScore int    `json:"riskScore"`
	RiskLevel string `json:"riskLevel"`
}

func mapRiskTasksToDTO(ranked []domain.TaskWithRisk) []riskTaskDTO {
	dtos := make([]riskTaskDTO, len(ranked))
	for i := range ranked {
		dtos[i] = riskTaskDTO{
			taskDTO:   mapTaskToDTO(&ranked[i].Task),
			RiskScore: ranked[i].RiskScore,
			RiskLevel: string(ranked[i].RiskLevel),
		}
	}
	return dtos
}

// statsDTO is the dashboard statistics payload.
type statsDTO struct {
	Total                 int               `json:"total"`
	CompletedToday        int               `json:"completedToday"`
	Overdue               int               `json:"overdue"`
	Upcoming              int               `json:"upcoming"`
	CompletedThisWeek     int               `json:"completedThisWeek"`
	CompletedLastWeek     int               `json:"completedLastWeek"`
	WoWTrend              int               `json:"wowTrend"`
	CompletionRate        int               `json:"completionRate"`
	AvgCompletionTimeDays int               `json:"avgCompletionTimeDays"`
	MostProductiveDay     string            `json:"mostProductiveDay"`
	TasksCompletedByDay   []dailyStatsDTO   `json:"tasksCompletedByDay"`
	PriorityCounts        priorityCountsDTO `json:"priorityCounts"`
}

type dailyStatsDTO struct {
	Day   string `json:"day"`
	Tasks int    `json:"tasks"`
}

type priorityCountsDTO struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

func mapStatsToDTO(stats domain.TaskStats) statsDTO {
	byDay := make([]dailyStatsDTO, len(stats.TasksCompletedByDay))
	for i, day := range stats.TasksCompletedByDay {
		byDay[i] = dailyStatsDTO{Day: day.Day, Tasks: day.Tasks}
	}
	return statsDTO{
		Total:                 stats.Total,
		CompletedToday:        stats.CompletedToday,
		Overdue:               stats.Overdue,
		Upcoming:              stats.Upcoming,
		CompletedThisWeek:     stats.CompletedThisWeek,
		CompletedLastWeek:     stats.CompletedLastWeek,
		WoWTrend:              stats.WoWTrend,
		CompletionRate:        stats.CompletionRate,
		AvgCompletionTimeDays: stats.AvgCompletionTimeDays,
		MostProductiveDay:     stats.MostProductiveDay,
		TasksCompletedByDay:   byDay,
		PriorityCounts: priorityCountsDTO{
			High:   stats.PriorityCounts.High,
			Medium: stats.PriorityCounts.Medium,
			Low:    stats.PriorityCounts.Low,
		},
	}
}

// workspaceDTO is the JSON shape of a workspace.
type workspaceDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"ownerId"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
}

func mapWorkspaceToDTO(ws *domain.Workspace) workspaceDTO {
	return workspaceDTO{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		OwnerID:     ws.OwnerID,
		CreatedAt:   domain.Timestamp{Time: ws.CreatedAt},
	}
}

type memberDTO struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type invitationDTO struct {
	ID            string           `json:"id"`
	WorkspaceID   string           `json:"workspaceId"`
	WorkspaceName string           `json:"workspaceName"`
	InviteeEmail  string           `json:"inviteeEmail"`
	InviterEmail  string           `json:"inviterEmail"`
	Status        string           `json:"status"`
	CreatedAt     domain.Timestamp `json:"createdAt"`
}

func mapInvitationToDTO(inv *domain.Invitation) invitationDTO {
	return invitationDTO{
		ID:            inv.ID,
		WorkspaceID:   inv.WorkspaceID,
		WorkspaceName: inv.WorkspaceName,
		InviteeEmail:  inv.InviteeEmail,
		InviterEmail:  inv.InviterEmail,
		Status:        string(inv.Status),
		CreatedAt:     domain.Timestamp{Time: inv.CreatedAt},
	}
}

type noteDTO struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	CreatedAt domain.Timestamp `json:"createdAt"`
}

func mapNoteToDTO(n *domain.Note) noteDTO {
	return noteDTO{
		ID:        n.ID,
		Content:   n.Content,
		CreatedAt: domain.Timestamp{Time: n.CreatedAt},
	}
}

type scheduleDTO struct {
	ID         string `json:"id"`
	CourseName string `json:"courseName"`
	Session    string `json:"session"`
	DayOfWeek  string `json:"dayOfWeek"`
	TimeStart  string `json:"timeStart"`
	TimeEnd    string `json:"timeEnd"`
	Location   string `json:"location"`
	Lecturer   string `json:"lecturer"`
}

func mapScheduleToDTO(entry *domain.Schedule) scheduleDTO {
	return scheduleDTO{
		ID:         entry.ID,
		CourseName: entry.CourseName,
		Session:    entry.Session,
		DayOfWeek:  string(entry.DayOfWeek),
		TimeStart:  entry.TimeStart,
		TimeEnd:    entry.TimeEnd,
		Location:   entry.Location,
		Lecturer:   entry.Lecturer,
	}
}

type templateTaskDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueInDays   int      `json:"dueInDays"`
}

type templateDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	AuthorID    string            `json:"authorId"`
	AuthorName  string            `json:"authorName"`
	Published   bool              `json:"published"`
	Tasks       []templateTaskDTO `json:"tasks"`
	CreatedAt   domain.Timestamp  `json:"createdAt"`
}

func mapTemplateToDTO(tpl *domain.Template) templateDTO {
	tasks := make([]templateTaskDTO, len(tpl.Tasks))
	for i, t := range tpl.Tasks {
		tasks[i] = templateTaskDTO{
			Title:       t.Title,
			Description: t.Description,
			Priority:    string(t.Priority),
			Tags:        emptyIfNil(t.Tags),
			DueInDays:   t.DueInDays,
		}
	}
	return templateDTO{
		ID:          tpl.ID,
		Title:       tpl.Title,
		Description: tpl.Description,
		Category:    tpl.Category,
		AuthorID:    tpl.AuthorID,
		AuthorName:  tpl.AuthorName,
		Published:   tpl.Published,
		Tasks:       tasks,
		CreatedAt:   domain.Timestamp{Time: tpl.CreatedAt},
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
