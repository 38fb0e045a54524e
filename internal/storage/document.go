package storage

import (
	"fmt"
	"time"

	"github.com/Loboguar4/TaskForge/internal/task"
)

// Document is the on-disk shape of the whole store.
type Document struct {
	Version int       `yaml:"version"`
	SavedAt time.Time `yaml:"saved_at"`
	Tasks   []Record  `yaml:"tasks"`
}

// Record is the on-disk shape of one task. Nullable fields carry no
// omitempty on purpose: an absent deadline serializes as an explicit
// `null` so hand-inspection never has to guess whether a field was
// dropped or simply unset.
type Record struct {
	ID                  string     `yaml:"id"`
	Title               string     `yaml:"title"`
	Category            string     `yaml:"category"`
	Description         string     `yaml:"description"`
	Deadline            *time.Time `yaml:"deadline"`
	Status              string     `yaml:"status"`
	CreatedAt           time.Time  `yaml:"created_at"`
	CompletedAt         *time.Time `yaml:"completed_at"`
	LastElapsedSeconds  int64      `yaml:"last_elapsed_seconds"`
	TotalElapsedSeconds int64      `yaml:"total_elapsed_seconds"`
	TimerState          string     `yaml:"timer_state"`
	RunStartedAt        *time.Time `yaml:"run_started_at"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{Version: documentVersion, Tasks: []Record{}}
}

// FromTask converts an in-memory task to its on-disk record.
func FromTask(t *task.Task) Record {
	return Record{
		ID:                  t.ID,
		Title:               t.Title,
		Category:            t.Category,
		Description:         t.Description,
		Deadline:            t.Deadline,
		Status:              string(t.Status),
		CreatedAt:           t.CreatedAt,
		CompletedAt:         t.CompletedAt,
		LastElapsedSeconds:  int64(t.LastElapsed / time.Second),
		TotalElapsedSeconds: int64(t.TotalElapsed / time.Second),
		TimerState:          string(t.TimerState),
		RunStartedAt:        t.RunStartedAt,
	}
}

// ToTask converts an on-disk record back to an in-memory task.
// A record with a running timer keeps its RunStartedAt so elapsed time
// keeps accruing across a restart.
func (r Record) ToTask() (*task.Task, error) {
	status := task.Status(r.Status)
	switch status {
	case task.StatusPending, task.StatusCompleted:
	default:
		return nil, fmt.Errorf("%w: task %s has unknown status %q", ErrCorruptStore, r.ID, r.Status)
	}

	state := task.TimerState(r.TimerState)
	switch state {
	case task.TimerStopped, task.TimerRunning:
	case "":
		state = task.TimerStopped
	default:
		return nil, fmt.Errorf("%w: task %s has unknown timer state %q", ErrCorruptStore, r.ID, r.TimerState)
	}
	if state == task.TimerRunning && r.RunStartedAt == nil {
		return nil, fmt.Errorf("%w: task %s is running without a start time", ErrCorruptStore, r.ID)
	}

	return &task.Task{
		ID:           r.ID,
		Title:        r.Title,
		Category:     r.Category,
		Description:  r.Description,
		Deadline:     r.Deadline,
		Status:       status,
		CreatedAt:    r.CreatedAt,
		CompletedAt:  r.CompletedAt,
		LastElapsed:  time.Duration(r.LastElapsedSeconds) * time.Second,
		TotalElapsed: time.Duration(r.TotalElapsedSeconds) * time.Second,
		TimerState:   state,
		RunStartedAt: r.RunStartedAt,
	}, nil
}
