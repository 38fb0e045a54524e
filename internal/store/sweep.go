package store

import (
	"github.com/Loboguar4/TaskForge/internal/task"
)

// Sweep removes every task whose deadline has passed, regardless of
// status or timer state, and persists the result. It returns snapshots
// of the removed tasks so the caller can report them.
//
// A persistence failure does not undo the removals: the in-memory
// collection stays authoritative and the next successful save catches
// up. The error is returned so the sweeper can log and skip.
func (s *Store) Sweep() ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	var removed []task.Task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Overdue(now) {
			removed = append(removed, *t)
			delete(s.byID, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	if len(removed) == 0 {
		return nil, nil
	}

	if err := s.persistLocked(); err != nil {
		return removed, err
	}
	return removed, nil
}
