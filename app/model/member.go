package model

import (
	"time"

	"taskhub/app/model/field"
)

// WorkspaceMember links a user into a workspace with a role. The
// (workspace, user) pair is unique; duplicate inserts surface as a
// store-level conflict.
type WorkspaceMember struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      string     `gorm:"column:user_id;size:64;not null;uniqueIndex:workspace_user" json:"userId"`
	WorkspaceID string     `gorm:"column:workspace_id;size:64;not null;uniqueIndex:workspace_user" json:"workspaceId"`
	Role        field.Role `gorm:"column:role;size:20;not null" json:"role"`
	Message     string     `gorm:"column:message;size:500;not null;default:''" json:"message"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}
