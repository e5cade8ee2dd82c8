package model

import (
	"time"

	"gorm.io/gorm"
)

// Workspace is the top-level tenant. Created and removed only by
// organization lifecycle events from the identity provider.
type Workspace struct {
	ID       string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name     string `gorm:"column:name;size:200;not null" json:"name"`
	Slug     string `gorm:"column:slug;size:200;not null;default:''" json:"slug"`
	OwnerID  string `gorm:"column:owner_id;size:64;index;not null" json:"ownerId"`
	ImageURL string `gorm:"column:image_url;size:500;not null;default:''" json:"image_url"`

	Owner    *User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []*WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Projects []*Project         `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}
