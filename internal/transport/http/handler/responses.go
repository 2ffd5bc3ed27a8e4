package handler

import (
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/usecase"
)

type projectResponse struct {
	ID          string    `json:"_id"`
	ProjectName string    `json:"projectName"`
	ClientName  string    `json:"clientName"`
	Description string    `json:"description"`
	Manager     string    `json:"manager"`
	Team        []string  `json:"team"`
	Tasks       []string  `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// projectDetailResponse replaces the task ids with the tasks themselves.
type projectDetailResponse struct {
	projectResponse
	Tasks []taskResponse `json:"tasks"`
}

type statusChangeResponse struct {
	User      string            `json:"user"`
	Status    domain.TaskStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
}

type taskResponse struct {
	ID          string                 `json:"_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Project     string                 `json:"project"`
	Status      domain.TaskStatus      `json:"status"`
	CompletedBy []statusChangeResponse `json:"completedBy"`
	Notes       []string               `json:"notes"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type populatedStatusResponse struct {
	User      domain.Identity   `json:"user"`
	Status    domain.TaskStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
}

// taskDetailResponse expands users and notes in place of their ids.
type taskDetailResponse struct {
	taskResponse
	CompletedBy []populatedStatusResponse `json:"completedBy"`
	Notes       []populatedNoteResponse   `json:"notes"`
}

type noteResponse struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	Task      string    `json:"task"`
	CreatedAt time.Time `json:"createdAt"`
}

type populatedNoteResponse struct {
	ID        string          `json:"_id"`
	Content   string          `json:"content"`
	CreatedBy domain.Identity `json:"createdBy"`
	Task      string          `json:"task"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		ClientName:  p.ClientName,
		Description: p.Description,
		Manager:     p.ManagerID,
		Team:        orEmpty(p.Team),
		Tasks:       orEmpty(p.Tasks),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectDetailResponse(d *usecase.ProjectDetails) projectDetailResponse {
	return projectDetailResponse{
		projectResponse: toProjectResponse(d.Project),
		Tasks:           toTaskResponses(d.Tasks),
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	history := make([]statusChangeResponse, len(t.CompletedBy))
	for i, c := range t.CompletedBy {
		history[i] = statusChangeResponse{User: c.UserID, Status: c.Status, ChangedAt: c.ChangedAt}
	}
	return taskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Project:     t.ProjectID,
		Status:      t.Status,
		CompletedBy: history,
		Notes:       orEmpty(t.Notes),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toTaskDetailResponse(d *usecase.TaskDetails) taskDetailResponse {
	resp := taskDetailResponse{
		taskResponse: toTaskResponse(d.Task),
		CompletedBy:  make([]populatedStatusResponse, len(d.CompletedBy)),
		Notes:        make([]populatedNoteResponse, len(d.Notes)),
	}
	for i, c := range d.CompletedBy {
		resp.CompletedBy[i] = populatedStatusResponse{User: c.User, Status: c.Status, ChangedAt: c.ChangedAt}
	}
	for i, n := range d.Notes {
		resp.Notes[i] = populatedNoteResponse{
			ID:        n.Note.ID,
			Content:   n.Note.Content,
			CreatedBy: n.CreatedBy,
			Task:      n.Note.TaskID,
			CreatedAt: n.Note.CreatedAt,
		}
	}
	return resp
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Content:   n.Content,
		CreatedBy: n.CreatedBy,
		Task:      n.TaskID,
		CreatedAt: n.CreatedAt,
	}
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
