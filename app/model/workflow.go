package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/app/model/field"
)

const (
	WorkflowRunPending = iota // runnable as soon as wake_at (if set) has passed
	WorkflowRunSleeping
	WorkflowRunDone
	WorkflowRunFailed // retries exhausted, dead-lettered
)

// WorkflowRun is the persisted state of one durable workflow execution:
// which event started it, how far it has progressed, and when it should
// wake. Suspended runs survive process restarts; the scheduler resumes
// whatever is due.
type WorkflowRun struct {
	ID        string     `gorm:"column:id;primaryKey;size:64" json:"id"`
	Event     string     `gorm:"column:event;size:100;index;not null" json:"event"`
	Payload   field.JSON `gorm:"column:payload" json:"payload"`
	Step      int        `gorm:"column:step;not null;default:0" json:"step"`
	Status    int        `gorm:"column:status;index;not null;default:0" json:"status"`
	WakeAt    *time.Time `gorm:"column:wake_at;index" json:"wake_at"`
	Attempts  int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError string     `gorm:"column:last_error;size:2000;not null;default:''" json:"last_error"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (r *WorkflowRun) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
