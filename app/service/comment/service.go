package comment

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
	"taskhub/app/model"
)

type Service struct {
	log *zap.Logger
	db  *gorm.DB
}

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Add creates a comment on a task. The author must be a member of the
// task's project.
func (srv *Service) Add(actorId, taskId, content string) (*model.Comment, error) {
	project, err := srv.taskProject(taskId)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(actorId) {
		return nil, errcode.ErrForbidden.New("you are not a member of this project")
	}
	m := &model.Comment{
		TaskID:  taskId,
		UserID:  actorId,
		Content: content,
	}
	if err = srv.db.Create(m).Error; err != nil {
		return nil, err
	}
	err = srv.db.Preload("User").First(m, "id = ?", m.ID).Error
	return m, err
}

// List returns a task's comments, author populated. Reading also
// requires project membership.
func (srv *Service) List(actorId, taskId string) ([]*model.Comment, error) {
	project, err := srv.taskProject(taskId)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(actorId) {
		return nil, errcode.ErrForbidden.New("you are not a member of this project")
	}
	var comments []*model.Comment
	err = srv.db.Where("task_id = ?", taskId).
		Preload("User").
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (srv *Service) taskProject(taskId string) (*model.Project, error) {
	task := model.Task{}
	err := srv.db.First(&task, "id = ?", taskId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("task not found")
		}
		return nil, err
	}
	project := model.Project{}
	err = srv.db.Preload("Members.User").First(&project, "id = ?", task.ProjectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("project not found")
		}
		return nil, err
	}
	return &project, nil
}
