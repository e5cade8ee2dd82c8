package project

import (
	"errors"

	"github.com/wuzfei/go-helper/slices"
	"go.uber.org/zap"
	expslices "golang.org/x/exp/slices"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
	"taskhub/app/internal/perm"
	"taskhub/app/model"
)

type Service struct {
	log *zap.Logger
	db  *gorm.DB
}

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Create creates a project in a workspace. Only a workspace admin may
// create; the team lead email resolves to a user id (silently unset when
// it matches nobody) and each team_members email matching a workspace
// member joins the project team.
func (srv *Service) Create(actorId string, params *CreateReq) (*model.Project, error) {
	workspace := model.Workspace{}
	err := srv.db.Preload("Members.User").First(&workspace, "id = ?", params.WorkspaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("workspace not found")
		}
		return nil, err
	}
	if !perm.IsWorkspaceAdmin(workspace.Members, actorId) {
		return nil, errcode.ErrForbidden.New("you do not have permission to create projects in this workspace")
	}

	teamLead := ""
	if params.TeamLead != "" {
		lead := model.User{}
		err = srv.db.Select("id").Where("email = ?", params.TeamLead).First(&lead).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		teamLead = lead.ID
	}

	m := &model.Project{
		WorkspaceID: workspace.ID,
		Name:        params.Name,
		Description: params.Description,
		Status:      params.Status,
		Priority:    params.Priority,
		Progress:    params.Progress,
		TeamLead:    teamLead,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
	}
	if err = srv.db.Create(m).Error; err != nil {
		return nil, err
	}

	if len(params.TeamMembers) > 0 {
		matched := slices.FilterFunc(workspace.Members, func(wm *model.WorkspaceMember) bool {
			return wm.User != nil && expslices.Contains(params.TeamMembers, wm.User.Email)
		})
		members := slices.Map(matched, func(wm *model.WorkspaceMember, _ int) *model.ProjectMember {
			return &model.ProjectMember{ProjectID: m.ID, UserID: wm.UserID}
		})
		if len(members) > 0 {
			if err = srv.db.Create(&members).Error; err != nil {
				return nil, err
			}
		}
	}
	return srv.detail(m.ID)
}

// Update replaces the project's editable fields. Workspace admins and
// the project's own team lead may update.
func (srv *Service) Update(actorId, projectId string, params *UpdateReq) (*model.Project, error) {
	m := model.Project{}
	err := srv.db.First(&m, "id = ?", projectId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("project not found")
		}
		return nil, err
	}

	var members []*model.WorkspaceMember
	if err = srv.db.Where("workspace_id = ?", m.WorkspaceID).Find(&members).Error; err != nil {
		return nil, err
	}
	if !perm.CanManageProject(members, &m, actorId) {
		return nil, errcode.ErrForbidden.New("you do not have permission to update the project")
	}

	err = srv.db.Model(&m).Updates(map[string]any{
		"name":        params.Name,
		"description": params.Description,
		"status":      params.Status,
		"priority":    params.Priority,
		"progress":    params.Progress,
		"start_date":  params.StartDate,
		"end_date":    params.EndDate,
	}).Error
	if err != nil {
		return nil, err
	}
	return srv.detail(m.ID)
}

func (srv *Service) detail(projectId string) (*model.Project, error) {
	m := model.Project{}
	err := srv.db.
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks.Assignee").
		Preload("Tasks.Comments.User").
		First(&m, "id = ?", projectId).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
