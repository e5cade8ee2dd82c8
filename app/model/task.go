package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/app/model/field"
)

type Task struct {
	ID          string           `gorm:"column:id;primaryKey;size:64" json:"id"`
	ProjectID   string           `gorm:"column:project_id;size:64;index;not null" json:"projectId"`
	Title       string           `gorm:"column:title;size:200;not null" json:"title"`
	Description string           `gorm:"column:description;size:2000;not null;default:''" json:"description"`
	Type        string           `gorm:"column:type;size:50;not null;default:''" json:"type"`
	Status      field.TaskStatus `gorm:"column:status;size:50;not null;default:''" json:"status"`
	Priority    string           `gorm:"column:priority;size:50;not null;default:''" json:"priority"`
	// AssigneeID, when set, must reference a member of the task's project.
	// The check is made at assignment time only.
	AssigneeID string     `gorm:"column:assignee_id;size:64;index;not null;default:''" json:"assigneeId"`
	DueDate    *time.Time `gorm:"column:due_date" json:"due_date"`

	Project  *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []*Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
