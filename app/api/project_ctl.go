package api

import (
	"github.com/gin-gonic/gin"

	ctx2 "taskhub/app/api/ctx"
	"taskhub/app/internal/response"
	"taskhub/app/service/project"
)

type ProjectCtl struct {
	service *project.Service
	hub     *Hub
}

func (ctl *ProjectCtl) Create(ctx *gin.Context) {
	params := project.CreateReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	res, err := ctl.service.Create(ctx2.UserId(ctx), &params)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("project.created", res)
	response.Response(ctx, nil, project.Res{Project: res, Message: "Project created successfully"})
}

func (ctl *ProjectCtl) Update(ctx *gin.Context) {
	params := project.UpdateReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	res, err := ctl.service.Update(ctx2.UserId(ctx), ctx.Param("id"), &params)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("project.updated", res)
	response.Response(ctx, nil, project.Res{Project: res, Message: "Project updated successfully"})
}
