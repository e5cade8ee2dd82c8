package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskhub/app/model"
)

type stubFetcher struct {
	workspaces []model.Workspace
	err        error
	calls      int
}

func (f *stubFetcher) Workspaces(context.Context) ([]model.Workspace, error) {
	f.calls++
	return f.workspaces, f.err
}

func twoWorkspaces() []model.Workspace {
	return []model.Workspace{
		{ID: "w1", Name: "alpha", Projects: []*model.Project{
			{ID: "p1", WorkspaceID: "w1", Name: "build"},
		}},
		{ID: "w2", Name: "beta"},
	}
}

func TestFetchSelectsFirstWorkspace(t *testing.T) {
	fetcher := &stubFetcher{workspaces: twoWorkspaces()}
	store := NewStore(zap.NewNop(), fetcher, nil)

	store.Fetch(context.Background())

	require.Len(t, store.Workspaces(), 2)
	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	assert.Equal(t, "w1", current.ID)
}

func TestFetchHonorsPersistedSelection(t *testing.T) {
	persister := &FilePersister{Path: filepath.Join(t.TempDir(), "state.json")}
	require.NoError(t, persister.Save("w2"))

	store := NewStore(zap.NewNop(), &stubFetcher{workspaces: twoWorkspaces()}, persister)
	store.Fetch(context.Background())

	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	assert.Equal(t, "w2", current.ID)
}

func TestFetchPersistedSelectionGone(t *testing.T) {
	persister := &FilePersister{Path: filepath.Join(t.TempDir(), "state.json")}
	require.NoError(t, persister.Save("deleted-workspace"))

	store := NewStore(zap.NewNop(), &stubFetcher{workspaces: twoWorkspaces()}, persister)
	store.Fetch(context.Background())

	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	assert.Equal(t, "w1", current.ID)

	// the fallback is persisted so the next session agrees
	saved, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, "w1", saved)
}

func TestFetchFailureYieldsEmptyList(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	store := NewStore(zap.NewNop(), fetcher, nil)

	store.Fetch(context.Background())

	assert.Empty(t, store.Workspaces())
	assert.Nil(t, store.CurrentWorkspace())
	assert.False(t, store.Loading())
}

func TestFetchRunsOncePerSession(t *testing.T) {
	fetcher := &stubFetcher{workspaces: twoWorkspaces()}
	store := NewStore(zap.NewNop(), fetcher, nil)

	store.Fetch(context.Background())
	store.Fetch(context.Background())

	assert.Equal(t, 1, fetcher.calls)
}

func TestAddTaskVisibleInBothViews(t *testing.T) {
	store := NewStore(zap.NewNop(), nil, nil)
	store.SetWorkspaces(twoWorkspaces())
	store.SetCurrentWorkspace("w1")

	store.AddTask(model.Task{ID: "t1", ProjectID: "p1", Title: "ship it"})

	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	require.Len(t, current.Projects[0].Tasks, 1)
	assert.Equal(t, "t1", current.Projects[0].Tasks[0].ID)

	list := store.Workspaces()
	require.Len(t, list[0].Projects[0].Tasks, 1)
	assert.Equal(t, "t1", list[0].Projects[0].Tasks[0].ID)
}

func TestUpdateAndDeleteTasks(t *testing.T) {
	store := NewStore(zap.NewNop(), nil, nil)
	store.SetWorkspaces(twoWorkspaces())
	store.AddTask(model.Task{ID: "t1", ProjectID: "p1", Title: "draft"})
	store.AddTask(model.Task{ID: "t2", ProjectID: "p1", Title: "review"})

	store.UpdateTask(model.Task{ID: "t1", ProjectID: "p1", Title: "final"})
	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	assert.Equal(t, "final", current.Projects[0].Tasks[0].Title)

	store.DeleteTasks("p1", "t1", "t2")
	assert.Empty(t, store.CurrentWorkspace().Projects[0].Tasks)
}

func TestDeleteCurrentWorkspaceFallsBack(t *testing.T) {
	store := NewStore(zap.NewNop(), nil, nil)
	store.SetWorkspaces(twoWorkspaces())
	store.SetCurrentWorkspace("w1")

	store.DeleteWorkspace("w1")
	current := store.CurrentWorkspace()
	require.NotNil(t, current)
	assert.Equal(t, "w2", current.ID)

	store.DeleteWorkspace("w2")
	assert.Nil(t, store.CurrentWorkspace())
}

func TestProjectReducers(t *testing.T) {
	store := NewStore(zap.NewNop(), nil, nil)
	store.SetWorkspaces(twoWorkspaces())

	store.AddProject(model.Project{ID: "p2", WorkspaceID: "w2", Name: "launch"})
	store.SetCurrentWorkspace("w2")
	require.Len(t, store.CurrentWorkspace().Projects, 1)

	store.UpdateProject(model.Project{ID: "p2", WorkspaceID: "w2", Name: "relaunch"})
	assert.Equal(t, "relaunch", store.CurrentWorkspace().Projects[0].Name)

	store.DeleteProject("p2")
	assert.Empty(t, store.CurrentWorkspace().Projects)
}
