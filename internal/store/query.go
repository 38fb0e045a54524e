package store

import (
	"sort"
	"strings"

	"github.com/Loboguar4/TaskForge/internal/task"
)

// All returns a snapshot of every task in creation order.
func (s *Store) All() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(*task.Task) bool { return true })
}

// FindByIDPrefix returns every task whose id starts with prefix,
// in creation order.
func (s *Store) FindByIDPrefix(prefix string) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(t *task.Task) bool {
		return prefix != "" && strings.HasPrefix(t.ID, prefix)
	})
}

// FindByTitle returns every task whose title contains the given
// substring, case-insensitively, in creation order.
func (s *Store) FindByTitle(substring string) []task.Task {
	q := strings.ToLower(substring)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(t *task.Task) bool {
		return q != "" && strings.Contains(strings.ToLower(t.Title), q)
	})
}

// Search matches the query against id prefixes and title substrings,
// the way the interactive selector does: either match qualifies.
func (s *Store) Search(query string) []task.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(func(t *task.Task) bool {
		if q == "" {
			return false
		}
		return strings.HasPrefix(t.ID, q) || strings.Contains(strings.ToLower(t.Title), q)
	})
}

// ListPending returns pending tasks ordered by deadline ascending,
// tasks without a deadline last, creation order breaking ties.
func (s *Store) ListPending() []task.Task {
	return s.listByStatus(task.StatusPending)
}

// ListCompleted returns completed tasks in the same order as ListPending.
func (s *Store) ListCompleted() []task.Task {
	return s.listByStatus(task.StatusCompleted)
}

func (s *Store) listByStatus(status task.Status) []task.Task {
	s.mu.Lock()
	out := s.snapshotLocked(func(t *task.Task) bool { return t.Status == status })
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Deadline, out[j].Deadline
		switch {
		case a == nil && b == nil:
			return false // keep creation order
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}

// snapshotLocked copies matching tasks out of the collection so callers
// never see shared mutable state. Callers must hold s.mu.
func (s *Store) snapshotLocked(match func(*task.Task) bool) []task.Task {
	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if match(t) {
			out = append(out, *t)
		}
	}
	return out
}
