package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string `gorm:"column:id;primaryKey;size:64" json:"id"`
	WorkspaceID string `gorm:"column:workspace_id;size:64;index;not null" json:"workspaceId"`
	Name        string `gorm:"column:name;size:200;not null" json:"name"`
	Description string `gorm:"column:description;size:2000;not null;default:''" json:"description"`
	Status      string `gorm:"column:status;size:50;not null;default:''" json:"status"`
	Priority    string `gorm:"column:priority;size:50;not null;default:''" json:"priority"`
	Progress    int    `gorm:"column:progress;not null;default:0" json:"progress"`
	// TeamLead is a user id, resolved from an email at creation time. It may
	// be empty when the email matched no user.
	TeamLead  string     `gorm:"column:team_lead;size:64;not null;default:''" json:"team_lead"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date"`

	Owner   *User            `gorm:"foreignKey:TeamLead" json:"owner,omitempty"`
	Members []*ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []*Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember is the subset of workspace members assigned to a project.
type ProjectMember struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID string `gorm:"column:project_id;size:64;not null;uniqueIndex:project_user" json:"projectId"`
	UserID    string `gorm:"column:user_id;size:64;not null;uniqueIndex:project_user" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// HasMember reports whether userId is on the project team. Callers must
// have preloaded Members.
func (p *Project) HasMember(userId string) bool {
	for _, m := range p.Members {
		if m.UserID == userId {
			return true
		}
	}
	return false
}
