package api

import (
	"github.com/gin-gonic/gin"

	ctx2 "taskhub/app/api/ctx"
	"taskhub/app/internal/response"
	"taskhub/app/service/workspace"
)

type WorkspaceCtl struct {
	service *workspace.Service
	hub     *Hub
}

func (ctl *WorkspaceCtl) List(ctx *gin.Context) {
	res, err := ctl.service.UserWorkspaces(ctx2.UserId(ctx))
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, workspace.ListRes{Workspaces: res})
}

func (ctl *WorkspaceCtl) Members(ctx *gin.Context) {
	res, err := ctl.service.Members(ctx2.UserId(ctx), ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, gin.H{"members": res})
}

func (ctl *WorkspaceCtl) AddMember(ctx *gin.Context) {
	params := workspace.AddMemberReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	member, err := ctl.service.AddMember(ctx2.UserId(ctx), &params)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("workspace.member.added", member)
	response.Response(ctx, nil, workspace.AddMemberRes{Member: member, Message: "Member added successfully"})
}
