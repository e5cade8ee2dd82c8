package project

import (
	"time"

	"taskhub/app/model"
)

type CreateReq struct {
	WorkspaceID string     `json:"workspaceId" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    int        `json:"progress" binding:"min=0,max=100"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	// TeamLead is an email, resolved to a user id at creation time.
	TeamLead string `json:"team_lead"`
	// TeamMembers are emails; each one matching a workspace member is
	// added to the project team.
	TeamMembers []string `json:"team_members"`
}

type UpdateReq struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    int        `json:"progress" binding:"min=0,max=100"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type Res struct {
	Project *model.Project `json:"project"`
	Message string         `json:"message"`
}
