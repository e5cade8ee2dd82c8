package migration

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/model"
)

type Migration struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMigration(log *zap.Logger, db *gorm.DB) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// Setup creates or upgrades the schema. Users and workspaces arrive via
// identity webhooks, so nothing is seeded here.
func (m *Migration) Setup() error {
	err := m.db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Task{},
		&model.Comment{},
		&model.WorkflowRun{},
	)
	if err != nil {
		m.log.Error("migrate tables failed", zap.Error(err))
	}
	return err
}
