package comment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
	"taskhub/app/model"
	"taskhub/app/model/field"
	"taskhub/app/pkg/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.NewGormDB(&db.Config{
		Driver: "sqlite",
		File:   filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Task{},
		&model.Comment{},
	))
	return gdb
}

func seed(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	users := []*model.User{
		{ID: "u-member", Email: "member@example.com", Name: "Mel"},
		{ID: "u-outside", Email: "outside@example.com", Name: "Out"},
	}
	require.NoError(t, gdb.Create(&users).Error)
	require.NoError(t, gdb.Create(&model.Workspace{ID: "w1", Name: "acme", OwnerID: "u-member"}).Error)
	require.NoError(t, gdb.Create(&model.WorkspaceMember{
		UserID: "u-member", WorkspaceID: "w1", Role: field.RoleMember,
	}).Error)
	require.NoError(t, gdb.Create(&model.Project{
		ID: "p1", WorkspaceID: "w1", Name: "apollo", TeamLead: "u-member",
	}).Error)
	require.NoError(t, gdb.Create(&model.ProjectMember{ProjectID: "p1", UserID: "u-member"}).Error)
	require.NoError(t, gdb.Create(&model.Task{ID: "t1", ProjectID: "p1", Title: "discuss"}).Error)
}

func TestAddAndList(t *testing.T) {
	gdb := openTestDB(t)
	seed(t, gdb)
	srv := NewService(zap.NewNop(), gdb)

	added, err := srv.Add("u-member", "t1", "looks good")
	require.NoError(t, err)
	assert.Equal(t, "looks good", added.Content)
	require.NotNil(t, added.User)
	assert.Equal(t, "member@example.com", added.User.Email)

	comments, err := srv.List("u-member", "t1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, added.ID, comments[0].ID)
}

func TestAddRequiresProjectMembership(t *testing.T) {
	gdb := openTestDB(t)
	seed(t, gdb)
	srv := NewService(zap.NewNop(), gdb)

	_, err := srv.Add("u-outside", "t1", "drive-by")
	assert.True(t, errcode.ErrForbidden.Has(err))
}

func TestListRequiresProjectMembership(t *testing.T) {
	gdb := openTestDB(t)
	seed(t, gdb)
	srv := NewService(zap.NewNop(), gdb)

	_, err := srv.List("u-outside", "t1")
	assert.True(t, errcode.ErrForbidden.Has(err))
}

func TestUnknownTask(t *testing.T) {
	gdb := openTestDB(t)
	seed(t, gdb)
	srv := NewService(zap.NewNop(), gdb)

	_, err := srv.Add("u-member", "no-such-task", "hello?")
	assert.True(t, errcode.ErrNotFound.Has(err))

	_, err = srv.List("u-member", "no-such-task")
	assert.True(t, errcode.ErrNotFound.Has(err))
}
