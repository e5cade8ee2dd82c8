package task

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
	"taskhub/app/internal/perm"
	"taskhub/app/model"
	"taskhub/app/workflow"
)

// Bus is the durable event bus tasks publish assignment events to.
type Bus interface {
	Send(ctx context.Context, event string, payload any) error
}

type Service struct {
	log *zap.Logger
	db  *gorm.DB
	bus Bus
}

func NewService(log *zap.Logger, db *gorm.DB, bus Bus) *Service {
	return &Service{log: log, db: db, bus: bus}
}

// Create creates a task on a project. Only the project's team lead may
// create; a given assignee must already be on the project team. When an
// assignee is set, a task-assigned event is enqueued; the caller is not
// kept waiting for notification delivery.
func (srv *Service) Create(ctx context.Context, actorId string, params *CreateReq) (*model.Task, error) {
	project, err := srv.loadProject(params.ProjectID)
	if err != nil {
		return nil, err
	}
	if !perm.CanManageTask(project, actorId) {
		return nil, errcode.ErrForbidden.New("you do not have admin privileges for this project")
	}
	if params.AssigneeID != "" && !project.HasMember(params.AssigneeID) {
		return nil, errcode.ErrInvalidParams.New("assignee is not in project team")
	}

	m := &model.Task{
		ProjectID:   project.ID,
		Title:       params.Title,
		Description: params.Description,
		Type:        params.Type,
		Status:      params.Status,
		Priority:    params.Priority,
		AssigneeID:  params.AssigneeID,
		DueDate:     params.DueDate,
	}
	if err = srv.db.Create(m).Error; err != nil {
		return nil, err
	}

	if m.AssigneeID != "" && srv.bus != nil {
		err = srv.bus.Send(ctx, workflow.EventTaskAssigned, workflow.TaskAssignedPayload{
			TaskID: m.ID,
			Origin: params.Origin,
		})
		if err != nil {
			// the task exists; notification failure must not fail the request
			srv.log.Error("enqueue task.assigned failed", zap.String("taskId", m.ID), zap.Error(err))
		}
	}
	return m, nil
}

// Update applies an allow-listed patch to a task. Team lead only; an
// assignee change re-checks project membership.
func (srv *Service) Update(actorId, taskId string, params *UpdateReq) error {
	m := model.Task{}
	err := srv.db.First(&m, "id = ?", taskId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errcode.ErrNotFound.New("task not found")
		}
		return err
	}
	project, err := srv.loadProject(m.ProjectID)
	if err != nil {
		return err
	}
	if !perm.CanManageTask(project, actorId) {
		return errcode.ErrForbidden.New("you do not have admin privileges for this project")
	}

	updates := map[string]any{}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Type != nil {
		updates["type"] = *params.Type
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.Priority != nil {
		updates["priority"] = *params.Priority
	}
	if params.AssigneeID != nil {
		if *params.AssigneeID != "" && !project.HasMember(*params.AssigneeID) {
			return errcode.ErrInvalidParams.New("assignee is not in project team")
		}
		updates["assignee_id"] = *params.AssigneeID
	}
	if params.DueDate != nil {
		updates["due_date"] = *params.DueDate
	}
	if len(updates) == 0 {
		return nil
	}
	return srv.db.Model(&m).Updates(updates).Error
}

// Delete removes a batch of tasks and their comments. All ids must
// belong to one project, whose team lead the actor must be. An empty or
// fully unmatched batch is NotFound.
func (srv *Service) Delete(actorId string, taskIds []string) error {
	if len(taskIds) == 0 {
		return errcode.ErrNotFound.New("task not found")
	}
	var tasks []*model.Task
	if err := srv.db.Where("id in ?", taskIds).Find(&tasks).Error; err != nil {
		return err
	}
	if len(tasks) == 0 {
		return errcode.ErrNotFound.New("task not found")
	}
	projectId := tasks[0].ProjectID
	for _, t := range tasks[1:] {
		if t.ProjectID != projectId {
			return errcode.ErrInvalidParams.New("tasks must belong to a single project")
		}
	}
	project, err := srv.loadProject(projectId)
	if err != nil {
		return err
	}
	if !perm.CanManageTask(project, actorId) {
		return errcode.ErrForbidden.New("you do not have admin privileges for this project")
	}
	return srv.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id in ?", taskIds).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id in ?", taskIds).Delete(&model.Task{}).Error
	})
}

// List returns a project's tasks for any member of the owning workspace.
func (srv *Service) List(actorId, projectId string) ([]*model.Task, error) {
	project, err := srv.loadProject(projectId)
	if err != nil {
		return nil, err
	}
	var members []*model.WorkspaceMember
	if err = srv.db.Where("workspace_id = ?", project.WorkspaceID).Find(&members).Error; err != nil {
		return nil, err
	}
	isMember := false
	for _, m := range members {
		if m.UserID == actorId {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, errcode.ErrForbidden.New("you are not a member of this workspace")
	}
	var tasks []*model.Task
	err = srv.db.Where("project_id = ?", projectId).
		Preload("Assignee").
		Preload("Comments.User").
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

func (srv *Service) loadProject(projectId string) (*model.Project, error) {
	project := model.Project{}
	err := srv.db.Preload("Members.User").First(&project, "id = ?", projectId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("project not found")
		}
		return nil, err
	}
	return &project, nil
}
