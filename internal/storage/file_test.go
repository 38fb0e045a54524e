package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Loboguar4/TaskForge/internal/task"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "tasks.yaml"))
}

func TestLoadMissingFile(t *testing.T) {
	fs := tempStore(t)

	doc, err := fs.Load()
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if len(doc.Tasks) != 0 {
		t.Errorf("Expected empty document, got %d tasks", len(doc.Tasks))
	}
	if doc.Version != documentVersion {
		t.Errorf("Expected version %d, got %d", documentVersion, doc.Version)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := tempStore(t)

	deadline := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	started := time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC)
	done := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	doc := NewDocument()
	doc.Tasks = []Record{
		{
			ID:                  "aaa-111",
			Title:               "Write report",
			Category:            "Work",
			Description:         "quarterly numbers",
			Deadline:            &deadline,
			Status:              "pending",
			CreatedAt:           started,
			LastElapsedSeconds:  120,
			TotalElapsedSeconds: 300,
			TimerState:          "running",
			RunStartedAt:        &started,
		},
		{
			ID:         "bbb-222",
			Title:      "Groceries",
			Status:     "completed",
			CreatedAt:  started,
			CompletedAt: &done,
			TimerState: "stopped",
		},
	}

	if err := fs.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(loaded.Tasks))
	}

	got := loaded.Tasks[0]
	if got.ID != "aaa-111" || got.Title != "Write report" || got.Category != "Work" {
		t.Errorf("First record fields wrong: %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Errorf("Deadline not preserved: %v", got.Deadline)
	}
	if got.TimerState != "running" || got.RunStartedAt == nil || !got.RunStartedAt.Equal(started) {
		t.Errorf("Running timer not preserved: state=%s start=%v", got.TimerState, got.RunStartedAt)
	}
	if got.LastElapsedSeconds != 120 || got.TotalElapsedSeconds != 300 {
		t.Errorf("Elapsed seconds not preserved: last=%d total=%d",
			got.LastElapsedSeconds, got.TotalElapsedSeconds)
	}

	if loaded.Tasks[1].CompletedAt == nil {
		t.Error("CompletedAt not preserved")
	}
}

func TestSaveWritesExplicitNulls(t *testing.T) {
	fs := tempStore(t)

	doc := NewDocument()
	doc.Tasks = []Record{{ID: "aaa", Title: "No deadline", Status: "pending", TimerState: "stopped"}}
	if err := fs.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(fs.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	// Absent optional fields must appear as explicit nulls, never be
	// omitted from the document.
	for _, field := range []string{"deadline: null", "run_started_at: null", "completed_at: null"} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Expected %q in saved document:\n%s", field, data)
		}
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	fs := tempStore(t)

	if err := fs.Save(NewDocument()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(fs.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file left behind after save")
	}
	if _, err := os.Stat(fs.Path()); err != nil {
		t.Errorf("Canonical file missing after save: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	fs := tempStore(t)

	if err := os.WriteFile(fs.Path(), []byte("tasks: [broken"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := fs.Load()
	if !errors.Is(err, ErrCorruptStore) {
		t.Errorf("Expected ErrCorruptStore, got %v", err)
	}
}

func TestRecordToTaskRejectsBadEnums(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		rec  Record
	}{
		{"unknown status", Record{ID: "a", Status: "archived", TimerState: "stopped"}},
		{"unknown timer state", Record{ID: "a", Status: "pending", TimerState: "paused"}},
		{"running without start", Record{ID: "a", Status: "pending", TimerState: "running"}},
	}

	for _, tt := range tests {
		if _, err := tt.rec.ToTask(); !errors.Is(err, ErrCorruptStore) {
			t.Errorf("%s: expected ErrCorruptStore, got %v", tt.name, err)
		}
	}

	ok := Record{ID: "a", Status: "pending", TimerState: "running", RunStartedAt: &now}
	if _, err := ok.ToTask(); err != nil {
		t.Errorf("Valid running record rejected: %v", err)
	}
}

func TestTaskRecordConversion(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	src := &task.Task{
		ID:           "abc",
		Title:        "Task",
		Category:     "Home",
		Deadline:     &deadline,
		Status:       task.StatusPending,
		CreatedAt:    time.Now(),
		LastElapsed:  90 * time.Second,
		TotalElapsed: 4 * time.Minute,
		TimerState:   task.TimerStopped,
	}

	back, err := FromTask(src).ToTask()
	if err != nil {
		t.Fatalf("ToTask failed: %v", err)
	}
	if back.ID != src.ID || back.Title != src.Title || back.Category != src.Category {
		t.Errorf("Identity fields lost in conversion: %+v", back)
	}
	if back.LastElapsed != src.LastElapsed || back.TotalElapsed != src.TotalElapsed {
		t.Errorf("Elapsed lost in conversion: last=%v total=%v", back.LastElapsed, back.TotalElapsed)
	}
	if back.Deadline == nil || !back.Deadline.Equal(deadline) {
		t.Errorf("Deadline lost in conversion: %v", back.Deadline)
	}
}
