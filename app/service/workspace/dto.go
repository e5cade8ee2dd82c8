package workspace

import (
	"taskhub/app/model"
)

type AddMemberReq struct {
	WorkspaceID string `json:"workspaceId" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,member_role"`
	Message     string `json:"message"`
}

type ListRes struct {
	Workspaces []*model.Workspace `json:"workspaces"`
}

type AddMemberRes struct {
	Member  *model.WorkspaceMember `json:"member"`
	Message string                 `json:"message"`
}
