package model

import (
	"time"

	"gorm.io/gorm"
)

// User rows mirror the identity provider; they are only ever written by
// identity lifecycle events, never by the HTTP surface.
type User struct {
	ID    string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Email string `gorm:"column:email;uniqueIndex;size:200;not null" json:"email"`
	Name  string `gorm:"column:name;size:200;not null;default:''" json:"name"`
	Image string `gorm:"column:image;size:500;not null;default:''" json:"image"`

	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}
