package store

import (
	"fmt"
	"time"

	"github.com/Loboguar4/TaskForge/internal/task"
)

// StartTimer begins a timer run on the task. Starting a timer that is
// already running is a reported error, not a silent no-op: the caller
// gets ErrInvalidState and the original run keeps accruing.
func (s *Store) StartTimer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return err
	}
	if t.Running() {
		return fmt.Errorf("timer for task %s already running: %w", t.ShortID(), task.ErrInvalidState)
	}

	started := s.now()
	t.TimerState = task.TimerRunning
	t.RunStartedAt = &started

	return s.persistLocked()
}

// StopTimer ends the current timer run and folds its duration into the
// task's totals. Returns the elapsed duration of the run for display.
func (s *Store) StopTimer(id string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return 0, err
	}
	if !t.Running() || t.RunStartedAt == nil {
		return 0, fmt.Errorf("timer for task %s not running: %w", t.ShortID(), task.ErrInvalidState)
	}

	ended := s.now()
	started := *t.RunStartedAt
	elapsed := ended.Sub(started)

	t.LastElapsed = elapsed
	t.TotalElapsed += elapsed
	t.TimerState = task.TimerStopped
	t.RunStartedAt = nil

	if s.runs != nil {
		if err := s.runs.RecordRun(t.ID, t.Title, started, ended); err != nil {
			s.log.Warnw("failed to record timer run", "id", t.ShortID(), "error", err)
		}
	}

	if err := s.persistLocked(); err != nil {
		return elapsed, err
	}
	return elapsed, nil
}

// ElapsedNow returns the task's live total: TotalElapsed plus the
// in-flight run, when one is running. It never mutates timer state.
func (s *Store) ElapsedNow(id string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.findLocked(id)
	if err != nil {
		return 0, err
	}

	total := t.TotalElapsed
	if t.Running() && t.RunStartedAt != nil {
		total += s.now().Sub(*t.RunStartedAt)
	}
	return total, nil
}
