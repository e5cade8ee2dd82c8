// Package perm holds the authorization predicates. They are pure: they
// operate on rows the caller has already loaded, never touch storage,
// and fail only by returning false.
package perm

import (
	"taskhub/app/model"
)

// IsWorkspaceAdmin reports whether userId holds the ADMIN role among the
// given workspace members.
func IsWorkspaceAdmin(members []*model.WorkspaceMember, userId string) bool {
	for _, m := range members {
		if m.UserID == userId && m.Role.IsAdmin() {
			return true
		}
	}
	return false
}

// IsProjectTeamLead reports whether userId is the project's team lead.
func IsProjectTeamLead(project *model.Project, userId string) bool {
	return project != nil && project.TeamLead != "" && project.TeamLead == userId
}

// CanManageProject allows workspace admins and the project's own team lead.
func CanManageProject(members []*model.WorkspaceMember, project *model.Project, userId string) bool {
	return IsWorkspaceAdmin(members, userId) || IsProjectTeamLead(project, userId)
}

// CanManageTask allows only the team lead. A workspace admin who does not
// lead the project cannot manage its tasks; the asymmetry with
// CanManageProject is deliberate.
func CanManageTask(project *model.Project, userId string) bool {
	return IsProjectTeamLead(project, userId)
}
