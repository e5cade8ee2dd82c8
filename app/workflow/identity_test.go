package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskhub/app/model"
	"taskhub/app/model/field"
)

func newIdentityEngine(t *testing.T) (*Engine, *fakeSender) {
	t.Helper()
	e := newTestEngine(t)
	sender := &fakeSender{}
	RegisterAll(e, zap.NewNop(), e.db, sender)
	return e, sender
}

func TestUserCreatedSyncsAndWelcomes(t *testing.T) {
	e, sender := newIdentityEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Send(ctx, EventUserCreated, UserPayload{
		ID: "u1", Email: "new@example.com", Name: "Newcomer",
	}))
	e.RunDue(ctx)

	user := model.User{}
	require.NoError(t, e.db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, "new@example.com", user.Email)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "new@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "Newcomer")
}

func TestUserCreatedRedeliveryConverges(t *testing.T) {
	e, _ := newIdentityEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Send(ctx, EventUserCreated, UserPayload{
		ID: "u1", Email: "new@example.com", Name: "First",
	}))
	require.NoError(t, e.Send(ctx, EventUserCreated, UserPayload{
		ID: "u1", Email: "new@example.com", Name: "Second",
	}))
	e.RunDue(ctx)

	var count int64
	require.NoError(t, e.db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	user := model.User{}
	require.NoError(t, e.db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, "Second", user.Name)
}

func TestUserUpdatedAndDeleted(t *testing.T) {
	e, _ := newIdentityEngine(t)
	ctx := context.Background()
	require.NoError(t, e.db.Create(&model.User{ID: "u1", Email: "old@example.com"}).Error)

	require.NoError(t, e.Send(ctx, EventUserUpdated, UserPayload{
		ID: "u1", Email: "renamed@example.com", Name: "Renamed",
	}))
	e.RunDue(ctx)

	user := model.User{}
	require.NoError(t, e.db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, "renamed@example.com", user.Email)
	assert.Equal(t, "Renamed", user.Name)

	require.NoError(t, e.Send(ctx, EventUserDeleted, UserPayload{ID: "u1"}))
	e.RunDue(ctx)

	err := e.db.First(&model.User{}, "id = ?", "u1").Error
	assert.Error(t, err)
}

func TestOrganizationCreatedAddsCreatorAsAdmin(t *testing.T) {
	e, _ := newIdentityEngine(t)
	ctx := context.Background()
	require.NoError(t, e.db.Create(&model.User{ID: "u-owner", Email: "owner@example.com"}).Error)

	require.NoError(t, e.Send(ctx, EventOrganizationCreated, OrganizationPayload{
		ID: "w1", Name: "Acme", Slug: "acme", CreatedBy: "u-owner",
	}))
	e.RunDue(ctx)

	workspace := model.Workspace{}
	require.NoError(t, e.db.First(&workspace, "id = ?", "w1").Error)
	assert.Equal(t, "u-owner", workspace.OwnerID)

	member := model.WorkspaceMember{}
	require.NoError(t, e.db.First(&member, "workspace_id = ? and user_id = ?", "w1", "u-owner").Error)
	assert.Equal(t, field.RoleAdmin, member.Role)
}

func TestOrganizationDeletedCascades(t *testing.T) {
	e, _ := newIdentityEngine(t)
	ctx := context.Background()
	require.NoError(t, e.db.Create(&model.User{ID: "u1", Email: "u1@example.com"}).Error)
	require.NoError(t, e.db.Create(&model.Workspace{ID: "w1", Name: "Acme", OwnerID: "u1"}).Error)
	require.NoError(t, e.db.Create(&model.WorkspaceMember{UserID: "u1", WorkspaceID: "w1", Role: field.RoleAdmin}).Error)
	require.NoError(t, e.db.Create(&model.Project{ID: "p1", WorkspaceID: "w1", Name: "apollo"}).Error)
	require.NoError(t, e.db.Create(&model.ProjectMember{ProjectID: "p1", UserID: "u1"}).Error)
	require.NoError(t, e.db.Create(&model.Task{ID: "t1", ProjectID: "p1", Title: "task"}).Error)
	require.NoError(t, e.db.Create(&model.Comment{TaskID: "t1", UserID: "u1", Content: "hi"}).Error)

	require.NoError(t, e.Send(ctx, EventOrganizationDeleted, OrganizationPayload{ID: "w1"}))
	e.RunDue(ctx)

	for _, probe := range []struct {
		name  string
		model any
	}{
		{"workspace", &model.Workspace{}},
		{"workspace member", &model.WorkspaceMember{}},
		{"project", &model.Project{}},
		{"project member", &model.ProjectMember{}},
		{"task", &model.Task{}},
		{"comment", &model.Comment{}},
	} {
		var count int64
		require.NoError(t, e.db.Model(probe.model).Count(&count).Error)
		assert.Zero(t, count, probe.name)
	}

	// the user belongs to the identity provider, not the workspace
	var users int64
	require.NoError(t, e.db.Model(&model.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}
