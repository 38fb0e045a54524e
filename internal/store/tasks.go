package store

import (
	"strings"
	"time"

	"github.com/Loboguar4/TaskForge/internal/task"
)

// Update carries the fields an edit may change. Nil pointers leave the
// current value untouched. ClearDeadline removes the deadline and wins
// over Deadline when both are set.
type Update struct {
	Title         *string
	Category      *string
	Description   *string
	Deadline      *time.Time
	ClearDeadline bool
	Status        *task.Status
}

// Create validates and adds a new pending task, persisting write-through.
// On a persistence failure the task is kept in memory and returned
// alongside the error, so the next successful save picks it up.
func (s *Store) Create(title, category string, deadline *time.Time) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := task.New(title, category, deadline, s.now())
	if err != nil {
		return task.Task{}, err
	}

	s.tasks = append(s.tasks, t)
	s.byID[t.ID] = t

	if err := s.persistLocked(); err != nil {
		return *t, err
	}
	return *t, nil
}

// Get returns a snapshot of the task with the exact id.
func (s *Store) Get(id string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return task.Task{}, err
	}
	return *t, nil
}

// Edit applies the given field updates to the task with the exact id.
func (s *Store) Edit(id string, upd Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return &task.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		t.Title = title
	}
	if upd.Category != nil {
		t.Category = strings.TrimSpace(*upd.Category)
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.ClearDeadline {
		t.Deadline = nil
	} else if upd.Deadline != nil {
		t.Deadline = upd.Deadline
	}
	if upd.Status != nil {
		s.setStatusLocked(t, *upd.Status)
	}

	return s.persistLocked()
}

// Delete removes the task with the exact id. Deletion is irreversible.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return err
	}

	s.removeLocked(t.ID)
	return s.persistLocked()
}

// Complete marks the task completed. Completing an already-completed
// task is a no-op and still succeeds.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return err
	}
	if t.Status == task.StatusCompleted {
		return nil
	}

	s.setStatusLocked(t, task.StatusCompleted)
	return s.persistLocked()
}

func (s *Store) setStatusLocked(t *task.Task, status task.Status) {
	if t.Status == status {
		return
	}
	t.Status = status
	if status == task.StatusCompleted {
		done := s.now()
		t.CompletedAt = &done
	} else {
		t.CompletedAt = nil
	}
}

func (s *Store) removeLocked(id string) {
	delete(s.byID, id)
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
