package api

import (
	"github.com/gin-gonic/gin"

	ctx2 "taskhub/app/api/ctx"
	"taskhub/app/internal/response"
	"taskhub/app/service/comment"
)

type CommentCtl struct {
	service *comment.Service
}

func (ctl *CommentCtl) Add(ctx *gin.Context) {
	params := comment.AddReq{}
	if err := ctx.ShouldBindJSON(&params); err != nil {
		response.FailBind(ctx, err)
		return
	}
	res, err := ctl.service.Add(ctx2.UserId(ctx), ctx.Param("taskId"), params.Content)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, comment.AddRes{Comment: res, Message: "Comment added successfully"})
}

func (ctl *CommentCtl) List(ctx *gin.Context) {
	res, err := ctl.service.List(ctx2.UserId(ctx), ctx.Param("taskId"))
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, comment.ListRes{Comments: res, Message: "Comments fetched successfully"})
}
