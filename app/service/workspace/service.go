package workspace

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
	"taskhub/app/internal/perm"
	"taskhub/app/model"
	"taskhub/app/model/field"
)

type Service struct {
	log *zap.Logger
	db  *gorm.DB
}

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// UserWorkspaces returns every workspace the user is a member of, each
// populated with its members, projects and the projects' tasks and
// comments. A user with no memberships gets an empty list.
func (srv *Service) UserWorkspaces(userId string) ([]*model.Workspace, error) {
	var ids []string
	err := srv.db.Model(&model.WorkspaceMember{}).
		Where("user_id = ?", userId).
		Pluck("workspace_id", &ids).Error
	if err != nil {
		return nil, err
	}
	res := make([]*model.Workspace, 0)
	if len(ids) == 0 {
		return res, nil
	}
	err = srv.db.Where("id in ?", ids).
		Preload("Owner").
		Preload("Members.User").
		Preload("Projects.Members.User").
		Preload("Projects.Owner").
		Preload("Projects.Tasks.Assignee").
		Preload("Projects.Tasks.Comments.User").
		Order("created_at").
		Find(&res).Error
	return res, err
}

// Members returns the membership rows of one workspace, callers being
// members themselves.
func (srv *Service) Members(actorId, workspaceId string) ([]*model.WorkspaceMember, error) {
	var members []*model.WorkspaceMember
	err := srv.db.Where("workspace_id = ?", workspaceId).Preload("User").Find(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errcode.ErrNotFound.New("workspace not found")
	}
	actorIsMember := false
	for _, m := range members {
		if m.UserID == actorId {
			actorIsMember = true
			break
		}
	}
	if !actorIsMember {
		return nil, errcode.ErrForbidden.New("you are not a member of this workspace")
	}
	return members, nil
}

// AddMember adds the user with the given email to the workspace. The
// actor must hold the ADMIN role; adding an existing member is a
// conflict.
func (srv *Service) AddMember(actorId string, params *AddMemberReq) (*model.WorkspaceMember, error) {
	role, ok := field.ParseRole(params.Role)
	if !ok {
		return nil, errcode.ErrInvalidParams.New("invalid role, allowed: ADMIN, MEMBER")
	}

	user := model.User{}
	err := srv.db.Where("email = ?", params.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("user not found")
		}
		return nil, err
	}

	workspace := model.Workspace{}
	err = srv.db.Preload("Members").First(&workspace, "id = ?", params.WorkspaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound.New("workspace not found")
		}
		return nil, err
	}

	if !perm.IsWorkspaceAdmin(workspace.Members, actorId) {
		return nil, errcode.ErrForbidden.New("you do not have admin privileges")
	}
	for _, m := range workspace.Members {
		if m.UserID == user.ID {
			return nil, errcode.ErrConflict.New("user is already a member")
		}
	}

	member := &model.WorkspaceMember{
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		Role:        role,
		Message:     params.Message,
	}
	if err = srv.db.Create(member).Error; err != nil {
		return nil, err
	}
	member.User = &user
	return member, nil
}
