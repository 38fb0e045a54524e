package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status describes where a task sits in its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// TimerState describes the stopwatch attached to a task.
type TimerState string

const (
	TimerStopped TimerState = "stopped"
	TimerRunning TimerState = "running"
)

// Task is one trackable unit of work with an optional deadline and a
// per-task stopwatch. Identity is the ID; ids are assigned at creation
// and never reused.
type Task struct {
	ID          string
	Title       string
	Category    string
	Description string

	// Deadline, when set, marks the point in time after which the task
	// becomes eligible for automatic removal regardless of status.
	Deadline *time.Time

	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time

	// LastElapsed is the duration of the most recent finished timer run,
	// TotalElapsed the sum across all runs.
	LastElapsed  time.Duration
	TotalElapsed time.Duration

	TimerState   TimerState
	RunStartedAt *time.Time
}

// New builds a pending task with a fresh id and zeroed timers.
func New(title, category string, deadline *time.Time, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	return &Task{
		ID:         uuid.New().String(),
		Title:      title,
		Category:   strings.TrimSpace(category),
		Deadline:   deadline,
		Status:     StatusPending,
		CreatedAt:  now,
		TimerState: TimerStopped,
	}, nil
}

// Running reports whether the task's stopwatch is currently running.
func (t *Task) Running() bool {
	return t.TimerState == TimerRunning
}

// Overdue reports whether the task's deadline has passed.
// Tasks without a deadline never expire.
func (t *Task) Overdue(now time.Time) bool {
	return t.Deadline != nil && !t.Deadline.After(now)
}

// ShortID returns the 8-character display form of the id.
func (t *Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}
