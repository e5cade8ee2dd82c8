// Package state keeps a local mirror of the caller's workspaces. The
// store is normalized: one workspace list plus the current selection
// held as an id and resolved on read, so the selected view can never
// drift from the list it came from.
package state

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"taskhub/app/model"
)

// Fetcher loads the workspace list from the service.
type Fetcher interface {
	Workspaces(ctx context.Context) ([]model.Workspace, error)
}

// Persister remembers the selected workspace id across sessions.
type Persister interface {
	Load() (string, error)
	Save(id string) error
}

type Store struct {
	log       *zap.Logger
	fetcher   Fetcher
	persister Persister

	mu         sync.Mutex
	workspaces []model.Workspace
	currentID  string
	loading    bool
	loaded     bool
}

func NewStore(log *zap.Logger, fetcher Fetcher, persister Persister) *Store {
	return &Store{
		log:       log,
		fetcher:   fetcher,
		persister: persister,
	}
}

// Fetch loads the workspace list once per session. Re-entrant calls
// while a fetch is running or after one has completed are no-ops.
// Failures are logged and leave the store with an empty list.
func (s *Store) Fetch(ctx context.Context) {
	s.mu.Lock()
	if s.loading || s.loaded {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	workspaces, err := s.fetcher.Workspaces(ctx)
	if err != nil {
		s.log.Error("fetch workspaces failed", zap.Error(err))
		workspaces = nil
	}

	persisted := ""
	if s.persister != nil {
		if persisted, err = s.persister.Load(); err != nil {
			s.log.Warn("load persisted selection failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.loaded = true
	s.workspaces = workspaces
	s.currentID = persisted
	s.reselect()
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Workspaces returns a snapshot of the list.
func (s *Store) Workspaces() []model.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Workspace, len(s.workspaces))
	copy(out, s.workspaces)
	return out
}

// CurrentWorkspace resolves the selection against the list; nil when no
// workspaces exist.
func (s *Store) CurrentWorkspace() *model.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

func (s *Store) current() *model.Workspace {
	for i := range s.workspaces {
		if s.workspaces[i].ID == s.currentID {
			return &s.workspaces[i]
		}
	}
	if len(s.workspaces) > 0 {
		return &s.workspaces[0]
	}
	return nil
}

func (s *Store) SetCurrentWorkspace(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
	s.reselect()
}

// reselect snaps currentID to a workspace that exists, preferring the
// one already selected, and persists the result.
func (s *Store) reselect() {
	if w := s.current(); w != nil {
		s.currentID = w.ID
	} else {
		s.currentID = ""
	}
	if s.persister != nil {
		if err := s.persister.Save(s.currentID); err != nil {
			s.log.Warn("persist selection failed", zap.Error(err))
		}
	}
}

func (s *Store) SetWorkspaces(workspaces []model.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces = workspaces
	s.reselect()
}

func (s *Store) AddWorkspace(w model.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces = append(s.workspaces, w)
	s.reselect()
}

func (s *Store) UpdateWorkspace(w model.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workspaces {
		if s.workspaces[i].ID == w.ID {
			s.workspaces[i] = w
			return
		}
	}
}

func (s *Store) DeleteWorkspace(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.workspaces[:0]
	for _, w := range s.workspaces {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.workspaces = kept
	s.reselect()
}

func (s *Store) AddProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workspaces {
		if s.workspaces[i].ID == p.WorkspaceID {
			s.workspaces[i].Projects = append(s.workspaces[i].Projects, &p)
			return
		}
	}
}

func (s *Store) UpdateProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if found := s.project(p.ID); found != nil {
		*found = p
	}
}

func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workspaces {
		projects := s.workspaces[i].Projects[:0]
		for _, p := range s.workspaces[i].Projects {
			if p.ID != id {
				projects = append(projects, p)
			}
		}
		s.workspaces[i].Projects = projects
	}
}

func (s *Store) AddTask(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.project(t.ProjectID); p != nil {
		p.Tasks = append(p.Tasks, &t)
	}
}

func (s *Store) UpdateTask(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.project(t.ProjectID)
	if p == nil {
		return
	}
	for i, existing := range p.Tasks {
		if existing.ID == t.ID {
			p.Tasks[i] = &t
			return
		}
	}
}

func (s *Store) DeleteTasks(projectId string, taskIds ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.project(projectId)
	if p == nil {
		return
	}
	gone := map[string]bool{}
	for _, id := range taskIds {
		gone[id] = true
	}
	tasks := p.Tasks[:0]
	for _, t := range p.Tasks {
		if !gone[t.ID] {
			tasks = append(tasks, t)
		}
	}
	p.Tasks = tasks
}

func (s *Store) project(id string) *model.Project {
	for i := range s.workspaces {
		for _, p := range s.workspaces[i].Projects {
			if p.ID == id {
				return p
			}
		}
	}
	return nil
}

// FilePersister stores the selected workspace id in a small JSON file.
type FilePersister struct {
	Path string
}

type persistedState struct {
	CurrentWorkspaceID string `json:"currentWorkspaceId"`
}

func (f *FilePersister) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	state := persistedState{}
	if err = json.Unmarshal(data, &state); err != nil {
		return "", err
	}
	return state.CurrentWorkspaceID, nil
}

func (f *FilePersister) Save(id string) error {
	data, err := json.Marshal(persistedState{CurrentWorkspaceID: id})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}
