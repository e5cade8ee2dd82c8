package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID      string `gorm:"column:id;primaryKey;size:64" json:"id"`
	TaskID  string `gorm:"column:task_id;size:64;index;not null" json:"taskId"`
	UserID  string `gorm:"column:user_id;size:64;not null" json:"userId"`
	Content string `gorm:"column:content;size:2000;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
