package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhub/app/model"
	"taskhub/app/model/field"
)

func members() []*model.WorkspaceMember {
	return []*model.WorkspaceMember{
		{UserID: "u-admin", Role: field.RoleAdmin},
		{UserID: "u-member", Role: field.RoleMember},
	}
}

func TestIsWorkspaceAdmin(t *testing.T) {
	ms := members()
	assert.True(t, IsWorkspaceAdmin(ms, "u-admin"))
	assert.False(t, IsWorkspaceAdmin(ms, "u-member"))
	assert.False(t, IsWorkspaceAdmin(ms, "u-stranger"))
	assert.False(t, IsWorkspaceAdmin(nil, "u-admin"))
}

func TestIsProjectTeamLead(t *testing.T) {
	p := &model.Project{TeamLead: "u-lead"}
	assert.True(t, IsProjectTeamLead(p, "u-lead"))
	assert.False(t, IsProjectTeamLead(p, "u-admin"))
	assert.False(t, IsProjectTeamLead(&model.Project{}, ""))
	assert.False(t, IsProjectTeamLead(nil, "u-lead"))
}

func TestCanManageProject(t *testing.T) {
	ms := members()
	p := &model.Project{TeamLead: "u-lead"}
	assert.True(t, CanManageProject(ms, p, "u-admin"))
	assert.True(t, CanManageProject(ms, p, "u-lead"))
	assert.False(t, CanManageProject(ms, p, "u-member"))
}

// A workspace admin who is not the team lead cannot manage tasks.
func TestCanManageTaskExcludesAdmins(t *testing.T) {
	p := &model.Project{TeamLead: "u-lead"}
	assert.True(t, CanManageTask(p, "u-lead"))
	assert.False(t, CanManageTask(p, "u-admin"))
	assert.False(t, CanManageTask(p, "u-member"))
}
