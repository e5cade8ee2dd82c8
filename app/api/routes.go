package api

import (
	"github.com/gin-gonic/gin"

	"taskhub/app/api/middleware"
	"taskhub/app/global"
	"taskhub/app/service/comment"
	"taskhub/app/service/project"
	"taskhub/app/service/task"
	"taskhub/app/service/workspace"
)

func ApiRoutes(r *gin.Engine, s *Server) {
	hub := NewHub(global.Log)

	workspaceCtl := &WorkspaceCtl{service: workspace.NewService(global.Log, global.DB), hub: hub}
	projectCtl := &ProjectCtl{service: project.NewService(global.Log, global.DB), hub: hub}
	taskCtl := &TaskCtl{service: task.NewService(global.Log, global.DB, s.engine), hub: hub}
	commentCtl := &CommentCtl{service: comment.NewService(global.Log, global.DB)}
	webhookCtl := &WebhookCtl{engine: s.engine, secret: s.config.Webhook.Secret, log: global.Log}
	eventsCtl := &EventsCtl{hub: hub, log: global.Log}

	api := r.Group("/api")
	// identity provider calls back unauthenticated; the HMAC signature
	// is the credential
	api.POST("/webhooks/identity", webhookCtl.Handle)

	auth := api.Group("", middleware.Auth(global.Jwt))
	auth.GET("/workspaces", workspaceCtl.List)
	auth.GET("/workspaces/:id/members", workspaceCtl.Members)
	auth.POST("/workspaces/members", workspaceCtl.AddMember)

	auth.POST("/projects", projectCtl.Create)
	auth.PUT("/projects/:id", projectCtl.Update)

	auth.GET("/tasks", taskCtl.List)
	auth.POST("/tasks", taskCtl.Create)
	auth.PUT("/tasks/:id", taskCtl.Update)
	auth.DELETE("/tasks", taskCtl.Delete)

	auth.POST("/tasks/:taskId/comments", commentCtl.Add)
	auth.GET("/tasks/:taskId/comments", commentCtl.List)

	auth.GET("/ws/events", eventsCtl.Stream)
}
