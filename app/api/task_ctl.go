package api

import (
	"github.com/gin-gonic/gin"

	ctx2 "taskhub/app/api/ctx"
	"taskhub/app/internal/errcode"
	"taskhub/app/internal/response"
	"taskhub/app/service/task"
)

type TaskCtl struct {
	service *task.Service
	hub     *Hub
}

func (ctl *TaskCtl) Create(ctx *gin.Context) {
	params := task.CreateReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	params.Origin = ctx.GetHeader("Origin")
	res, err := ctl.service.Create(ctx.Request.Context(), ctx2.UserId(ctx), &params)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("task.created", res)
	response.Response(ctx, nil, gin.H{"message": "Task created successfully"})
}

func (ctl *TaskCtl) Update(ctx *gin.Context) {
	params := task.UpdateReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	taskId := ctx.Param("id")
	err := ctl.service.Update(ctx2.UserId(ctx), taskId, &params)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("task.updated", gin.H{"id": taskId})
	response.Response(ctx, nil, gin.H{"message": "Task updated successfully"})
}

func (ctl *TaskCtl) Delete(ctx *gin.Context) {
	params := task.DeleteReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	err := ctl.service.Delete(ctx2.UserId(ctx), params.TaskIDs)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	ctl.hub.Broadcast("task.deleted", gin.H{"taskIds": params.TaskIDs})
	response.Response(ctx, nil, gin.H{"message": "Task deleted successfully"})
}

func (ctl *TaskCtl) List(ctx *gin.Context) {
	projectId := ctx.Query("project_id")
	if projectId == "" {
		response.Fail(ctx, errcode.ErrInvalidParams.New("missing project_id"))
		return
	}
	res, err := ctl.service.List(ctx2.UserId(ctx), projectId)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, task.ListRes{Tasks: res, Message: "Tasks fetched successfully"})
}
