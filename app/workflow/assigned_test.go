package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/model"
	"taskhub/app/model/field"
	"taskhub/app/pkg/mail"
)

type fakeSender struct {
	sent []*mail.Message
}

func (s *fakeSender) Send(_ context.Context, msg *mail.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func seedAssignment(t *testing.T, gdb *gorm.DB, due *time.Time) {
	t.Helper()
	require.NoError(t, gdb.Create(&model.User{
		ID: "u-assignee", Email: "assignee@example.com", Name: "Sam",
	}).Error)
	require.NoError(t, gdb.Create(&model.Workspace{ID: "w1", Name: "acme", OwnerID: "u-assignee"}).Error)
	require.NoError(t, gdb.Create(&model.Project{
		ID: "p1", WorkspaceID: "w1", Name: "apollo", TeamLead: "u-assignee",
	}).Error)
	require.NoError(t, gdb.Create(&model.Task{
		ID: "t1", ProjectID: "p1", Title: "ship the thing",
		Status: field.TaskStatusTodo, AssigneeID: "u-assignee", DueDate: due,
	}).Error)
}

func newAssignmentEngine(t *testing.T) (*Engine, *fakeSender) {
	t.Helper()
	e := newTestEngine(t)
	sender := &fakeSender{}
	RegisterAll(e, zap.NewNop(), e.db, sender)
	return e, sender
}

func sendAssigned(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.Send(context.Background(), EventTaskAssigned, TaskAssignedPayload{
		TaskID: "t1",
		Origin: "https://app.example.com",
	}))
}

func TestAssignedDueTodaySendsOnlyAssignmentMail(t *testing.T) {
	e, sender := newAssignmentEngine(t)
	due := time.Now()
	seedAssignment(t, e.db, &due)

	sendAssigned(t, e)
	e.RunDue(context.Background())

	run := loadRun(t, e)
	assert.Equal(t, model.WorkflowRunDone, run.Status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "assignee@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "ship the thing")
	assert.Contains(t, sender.sent[0].Body, "https://app.example.com")
}

func TestAssignedDueLaterSleepsThenReminds(t *testing.T) {
	e, sender := newAssignmentEngine(t)
	due := time.Now().Add(72 * time.Hour)
	seedAssignment(t, e.db, &due)

	ctx := context.Background()
	sendAssigned(t, e)
	e.RunDue(ctx)

	run := loadRun(t, e)
	assert.Equal(t, model.WorkflowRunSleeping, run.Status)
	require.NotNil(t, run.WakeAt)
	assert.WithinDuration(t, due, *run.WakeAt, time.Second)
	require.Len(t, sender.sent, 1)

	e.now = func() time.Time { return due.Add(time.Second) }
	e.RunDue(ctx)

	run = loadRun(t, e)
	assert.Equal(t, model.WorkflowRunDone, run.Status)
	require.Len(t, sender.sent, 2)
	reminder := sender.sent[1]
	assert.Equal(t, "assignee@example.com", reminder.To)
	assert.True(t, strings.Contains(strings.ToLower(reminder.Subject), "reminder"))
}

func TestAssignedNoReminderWhenDone(t *testing.T) {
	e, sender := newAssignmentEngine(t)
	due := time.Now().Add(72 * time.Hour)
	seedAssignment(t, e.db, &due)

	ctx := context.Background()
	sendAssigned(t, e)
	e.RunDue(ctx)
	require.Len(t, sender.sent, 1)

	require.NoError(t, e.db.Model(&model.Task{}).
		Where("id = ?", "t1").
		Update("status", field.TaskStatusDone).Error)

	e.now = func() time.Time { return due.Add(time.Second) }
	e.RunDue(ctx)

	assert.Equal(t, model.WorkflowRunDone, loadRun(t, e).Status)
	assert.Len(t, sender.sent, 1, "done tasks get no reminder")
}

func TestAssignedTaskDeletedWhileSleeping(t *testing.T) {
	e, sender := newAssignmentEngine(t)
	due := time.Now().Add(72 * time.Hour)
	seedAssignment(t, e.db, &due)

	ctx := context.Background()
	sendAssigned(t, e)
	e.RunDue(ctx)
	require.Len(t, sender.sent, 1)

	require.NoError(t, e.db.Unscoped().Delete(&model.Task{}, "id = ?", "t1").Error)

	e.now = func() time.Time { return due.Add(time.Second) }
	e.RunDue(ctx)

	assert.Equal(t, model.WorkflowRunDone, loadRun(t, e).Status)
	assert.Len(t, sender.sent, 1)
}

func TestAssignedTaskAlreadyGone(t *testing.T) {
	e, sender := newAssignmentEngine(t)

	sendAssigned(t, e)
	e.RunDue(context.Background())

	assert.Equal(t, model.WorkflowRunDone, loadRun(t, e).Status)
	assert.Empty(t, sender.sent)
}

func TestAssignedNoDueDate(t *testing.T) {
	e, sender := newAssignmentEngine(t)
	seedAssignment(t, e.db, nil)

	sendAssigned(t, e)
	e.RunDue(context.Background())

	assert.Equal(t, model.WorkflowRunDone, loadRun(t, e).Status)
	assert.Len(t, sender.sent, 1)
}
