package task

import (
	"time"

	"taskhub/app/model"
	"taskhub/app/model/field"
)

type CreateReq struct {
	ProjectID   string           `json:"projectId" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Status      field.TaskStatus `json:"status"`
	Priority    string           `json:"priority"`
	AssigneeID  string           `json:"assigneeId"`
	DueDate     *time.Time       `json:"due_date"`
	// Origin is the requesting site's origin header, carried into the
	// notification mails' "view task" link.
	Origin string `json:"-"`
}

// UpdateReq is an explicit patch: only non-nil fields are applied, and
// the task's id and project can never be rewritten through it.
type UpdateReq struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Type        *string           `json:"type"`
	Status      *field.TaskStatus `json:"status"`
	Priority    *string           `json:"priority"`
	AssigneeID  *string           `json:"assigneeId"`
	DueDate     *time.Time        `json:"due_date"`
}

type DeleteReq struct {
	TaskIDs []string `json:"taskIds"`
}

type ListRes struct {
	Tasks   []*model.Task `json:"tasks"`
	Message string        `json:"message"`
}
