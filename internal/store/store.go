// Package store owns the in-memory task collection and its lifecycle.
//
// Two actors touch the collection: foreground operations driven by the
// user, and the background expiry sweeper. One mutex serializes them
// all; no operation holds the lock across user input or any other
// blocking wait. Every mutation persists write-through — the save
// happens under the same lock, before the call returns — so a durable
// snapshot always reflects a consistent state. When a save fails the
// in-memory state is kept and remains the source of truth for the next
// successful save.
package store

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Loboguar4/TaskForge/internal/storage"
	"github.com/Loboguar4/TaskForge/internal/task"
)

// RunRecorder receives finished timer runs. Recording is best effort:
// a recorder failure is logged and never fails the stop.
type RunRecorder interface {
	RecordRun(taskID, title string, startedAt, endedAt time.Time) error
}

// Store is the authoritative task collection bound to its file.
type Store struct {
	mu    sync.Mutex
	tasks []*task.Task // creation order
	byID  map[string]*task.Task

	file *storage.FileStore
	log  *zap.SugaredLogger
	now  func() time.Time
	runs RunRecorder
}

// Open loads the task document from the file store and builds the
// in-memory collection. Running timers are resumed as running with
// their original start time, so elapsed work survives a crash.
func Open(file *storage.FileStore, log *zap.SugaredLogger) (*Store, error) {
	doc, err := file.Load()
	if err != nil {
		return nil, err
	}

	s := &Store{
		tasks: make([]*task.Task, 0, len(doc.Tasks)),
		byID:  make(map[string]*task.Task, len(doc.Tasks)),
		file:  file,
		log:   log,
		now:   time.Now,
	}
	for _, rec := range doc.Tasks {
		t, err := rec.ToTask()
		if err != nil {
			return nil, err
		}
		s.tasks = append(s.tasks, t)
		s.byID[t.ID] = t
	}

	return s, nil
}

// SetClock replaces the store's time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetRunRecorder attaches a recorder for finished timer runs.
func (s *Store) SetRunRecorder(r RunRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = r
}

// Len returns the number of tasks, pending and completed.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// persistLocked writes the current collection through to disk.
// Callers must hold s.mu.
func (s *Store) persistLocked() error {
	doc := storage.NewDocument()
	doc.Tasks = make([]storage.Record, 0, len(s.tasks))
	for _, t := range s.tasks {
		doc.Tasks = append(doc.Tasks, storage.FromTask(t))
	}

	if err := s.file.Save(doc); err != nil {
		s.log.Warnw("failed to persist tasks", "path", s.file.Path(), "error", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// findLocked resolves an exact id. Callers must hold s.mu.
func (s *Store) findLocked(id string) (*task.Task, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, task.ErrNotFound)
	}
	return t, nil
}
