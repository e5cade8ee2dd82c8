package workflow

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub/app/model"
	"taskhub/app/model/field"
	"taskhub/app/pkg/mail"
)

// functions bundles the collaborators the registered workflows need.
type functions struct {
	log    *zap.Logger
	db     *gorm.DB
	sender mail.Sender
}

// RegisterAll wires every workflow function into the engine.
func RegisterAll(e *Engine, log *zap.Logger, db *gorm.DB, sender mail.Sender) {
	f := &functions{log: log, db: db, sender: sender}
	e.Register(EventUserCreated, f.userCreated)
	e.Register(EventUserUpdated, f.userUpdated)
	e.Register(EventUserDeleted, f.userDeleted)
	e.Register(EventOrganizationCreated, f.organizationCreated)
	e.Register(EventOrganizationUpdated, f.organizationUpdated)
	e.Register(EventOrganizationDeleted, f.organizationDeleted)
	e.Register(EventTaskAssigned, f.taskAssigned)
}

// userCreated syncs the new account and sends the welcome mail. The sync
// is an upsert so a re-delivered event converges instead of hitting the
// unique key.
func (f *functions) userCreated(c *Context) error {
	var p UserPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	if err := c.Step("sync-user", func() error {
		return f.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model.User{
			ID:    p.ID,
			Email: p.Email,
			Name:  p.Name,
			Image: p.Image,
		}).Error
	}); err != nil {
		return err
	}
	return c.Step("send-welcome-email", func() error {
		msg := mail.Welcome(p.Name)
		msg.To = p.Email
		return f.sender.Send(c.Context(), msg)
	})
}

func (f *functions) userUpdated(c *Context) error {
	var p UserPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	return f.db.Model(&model.User{}).Where("id = ?", p.ID).Updates(map[string]any{
		"email": p.Email,
		"name":  p.Name,
		"image": p.Image,
	}).Error
}

func (f *functions) userDeleted(c *Context) error {
	var p UserPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	return f.db.Delete(&model.User{}, "id = ?", p.ID).Error
}

// organizationCreated creates the workspace and adds the creator as its
// ADMIN member.
func (f *functions) organizationCreated(c *Context) error {
	var p OrganizationPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	if err := c.Step("sync-workspace", func() error {
		return f.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model.Workspace{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			OwnerID:  p.CreatedBy,
			ImageURL: p.ImageURL,
		}).Error
	}); err != nil {
		return err
	}
	return c.Step("add-creator-as-admin", func() error {
		return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.WorkspaceMember{
			UserID:      p.CreatedBy,
			WorkspaceID: p.ID,
			Role:        field.RoleAdmin,
		}).Error
	})
}

func (f *functions) organizationUpdated(c *Context) error {
	var p OrganizationPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	return f.db.Model(&model.Workspace{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":      p.Name,
		"slug":      p.Slug,
		"image_url": p.ImageURL,
	}).Error
}

// organizationDeleted removes the workspace and everything it owns:
// memberships, projects, project members, tasks and comments.
func (f *functions) organizationDeleted(c *Context) error {
	var p OrganizationPayload
	if err := c.Payload(&p); err != nil {
		return err
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		var projectIds []string
		if err := tx.Model(&model.Project{}).Where("workspace_id = ?", p.ID).
			Pluck("id", &projectIds).Error; err != nil {
			return err
		}
		if len(projectIds) > 0 {
			var taskIds []string
			if err := tx.Model(&model.Task{}).Where("project_id in ?", projectIds).
				Pluck("id", &taskIds).Error; err != nil {
				return err
			}
			if len(taskIds) > 0 {
				if err := tx.Where("task_id in ?", taskIds).Delete(&model.Comment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id in ?", taskIds).Delete(&model.Task{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("project_id in ?", projectIds).Delete(&model.ProjectMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id in ?", projectIds).Delete(&model.Project{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("workspace_id = ?", p.ID).Delete(&model.WorkspaceMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workspace{}, "id = ?", p.ID).Error
	})
}
