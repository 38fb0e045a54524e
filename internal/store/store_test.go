package store_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/task"
	"github.com/Loboguar4/TaskForge/internal/testutil"
)

func TestCreateAssignsUniqueStableIDs(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		created, err := st.Create("Task", "", nil)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("Duplicate id %s", created.ID)
		}
		seen[created.ID] = true
	}

	if st.Len() != 20 {
		t.Errorf("Expected 20 tasks, got %d", st.Len())
	}
}

func TestCreateValidatesTitle(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	_, err := st.Create("   ", "", nil)
	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
	if st.Len() != 0 {
		t.Error("Invalid task must not be stored")
	}
}

func TestCreateWritesThrough(t *testing.T) {
	st, path := testutil.OpenStore(t)

	created, err := st.Create("Durable", "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The task must be durable before Create returns, so a reopened
	// store sees it immediately.
	reopened := testutil.ReopenStore(t, path)
	if _, err := reopened.Get(created.ID); err != nil {
		t.Errorf("Task not durable after Create: %v", err)
	}
}

func TestEdit(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	created, _ := st.Create("Old title", "Work", nil)

	newTitle := "New title"
	newCategory := "Home"
	deadline := time.Now().Add(time.Hour)
	err := st.Edit(created.ID, store.Update{
		Title:    &newTitle,
		Category: &newCategory,
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	got, _ := st.Get(created.ID)
	if got.Title != "New title" || got.Category != "Home" {
		t.Errorf("Edit not applied: %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Errorf("Deadline not applied: %v", got.Deadline)
	}

	// Clearing wins over setting
	err = st.Edit(created.ID, store.Update{ClearDeadline: true})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	got, _ = st.Get(created.ID)
	if got.Deadline != nil {
		t.Error("ClearDeadline did not clear")
	}
}

func TestEditRejectsEmptyTitle(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Keep me", "", nil)

	empty := "  "
	err := st.Edit(created.ID, store.Update{Title: &empty})
	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}

	got, _ := st.Get(created.ID)
	if got.Title != "Keep me" {
		t.Errorf("Title mutated by failed edit: %q", got.Title)
	}
}

func TestEditNotFound(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	title := "x"
	if err := st.Edit("nope", store.Update{Title: &title}); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Doomed", "", nil)

	if err := st.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(created.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(created.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Second delete should be ErrNotFound, got %v", err)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Finish me", "", nil)

	if err := st.Complete(created.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	got, _ := st.Get(created.ID)
	if got.Status != task.StatusCompleted {
		t.Errorf("Expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}
	first := *got.CompletedAt

	if err := st.Complete(created.ID); err != nil {
		t.Fatalf("Second Complete should be a no-op, got %v", err)
	}
	got, _ = st.Get(created.ID)
	if !got.CompletedAt.Equal(first) {
		t.Error("Repeated Complete moved CompletedAt")
	}
}

func TestTimerCycle(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	created, _ := st.Create("Write report", "Work", nil)

	if err := st.StartTimer(created.ID); err != nil {
		t.Fatalf("StartTimer failed: %v", err)
	}
	clock.Advance(2 * time.Second)

	elapsed, err := st.StopTimer(created.ID)
	if err != nil {
		t.Fatalf("StopTimer failed: %v", err)
	}
	if elapsed != 2*time.Second {
		t.Errorf("Expected 2s elapsed, got %v", elapsed)
	}

	got, _ := st.Get(created.ID)
	if got.LastElapsed != 2*time.Second || got.TotalElapsed != 2*time.Second {
		t.Errorf("First cycle: last=%v total=%v, want 2s/2s", got.LastElapsed, got.TotalElapsed)
	}
	if got.TimerState != task.TimerStopped || got.RunStartedAt != nil {
		t.Error("Timer not reset after stop")
	}
}

func TestConsecutiveTimerCyclesAccumulate(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	created, _ := st.Create("Task", "", nil)

	st.StartTimer(created.ID)
	clock.Advance(2 * time.Second)
	st.StopTimer(created.ID)

	afterFirst, _ := st.Get(created.ID)

	st.StartTimer(created.ID)
	clock.Advance(5 * time.Second)
	st.StopTimer(created.ID)

	got, _ := st.Get(created.ID)
	if got.LastElapsed != 5*time.Second {
		t.Errorf("Expected last 5s, got %v", got.LastElapsed)
	}
	if got.TotalElapsed != afterFirst.TotalElapsed+5*time.Second {
		t.Errorf("Expected total %v, got %v", afterFirst.TotalElapsed+5*time.Second, got.TotalElapsed)
	}
}

func TestStartTimerTwiceIsInvalidState(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Task", "", nil)

	if err := st.StartTimer(created.ID); err != nil {
		t.Fatalf("StartTimer failed: %v", err)
	}
	if err := st.StartTimer(created.ID); !errors.Is(err, task.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
}

func TestStopTimerWhenStoppedIsInvalidState(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Task", "", nil)

	if _, err := st.StopTimer(created.ID); !errors.Is(err, task.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
}

func TestElapsedNowProjectsWithoutMutating(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	created, _ := st.Create("Task", "", nil)
	st.StartTimer(created.ID)
	clock.Advance(3 * time.Second)

	live, err := st.ElapsedNow(created.ID)
	if err != nil {
		t.Fatalf("ElapsedNow failed: %v", err)
	}
	if live != 3*time.Second {
		t.Errorf("Expected 3s live total, got %v", live)
	}

	// Projection must not mutate the run
	got, _ := st.Get(created.ID)
	if got.TotalElapsed != 0 {
		t.Errorf("ElapsedNow mutated TotalElapsed: %v", got.TotalElapsed)
	}
	if !got.Running() {
		t.Error("ElapsedNow stopped the timer")
	}

	clock.Advance(2 * time.Second)
	elapsed, _ := st.StopTimer(created.ID)
	if elapsed != 5*time.Second {
		t.Errorf("Expected 5s elapsed at stop, got %v", elapsed)
	}
}

func TestRunningTimerSurvivesReopen(t *testing.T) {
	st, path := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	created, _ := st.Create("Long haul", "", nil)
	st.StartTimer(created.ID)

	// Simulate a process restart while the timer runs.
	reopened := testutil.ReopenStore(t, path)
	reopened.SetClock(clock.Now)

	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !got.Running() {
		t.Fatal("Running timer must be resumed as running after reload")
	}
	if got.RunStartedAt == nil || !got.RunStartedAt.Equal(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("RunStartedAt not preserved: %v", got.RunStartedAt)
	}

	clock.Advance(10 * time.Second)
	elapsed, err := reopened.StopTimer(created.ID)
	if err != nil {
		t.Fatalf("StopTimer after reopen failed: %v", err)
	}
	if elapsed != 10*time.Second {
		t.Errorf("Elapsed across restart should be 10s, got %v", elapsed)
	}
}

func TestSaveLoadRoundTripReproducesTaskSet(t *testing.T) {
	st, path := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	deadline := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	a, _ := st.Create("With deadline", "Work", &deadline)
	b, _ := st.Create("Timed", "", nil)
	c, _ := st.Create("Done", "", nil)

	st.StartTimer(b.ID)
	clock.Advance(4 * time.Second)
	st.StopTimer(b.ID)
	st.StartTimer(b.ID) // leave running
	st.Complete(c.ID)

	reopened := testutil.ReopenStore(t, path)
	if reopened.Len() != 3 {
		t.Fatalf("Expected 3 tasks after reload, got %d", reopened.Len())
	}

	gotA, _ := reopened.Get(a.ID)
	if gotA.Deadline == nil || !gotA.Deadline.Equal(deadline) {
		t.Errorf("Deadline not reproduced: %v", gotA.Deadline)
	}

	gotB, _ := reopened.Get(b.ID)
	if gotB.TotalElapsed != 4*time.Second || gotB.LastElapsed != 4*time.Second {
		t.Errorf("Elapsed not reproduced: last=%v total=%v", gotB.LastElapsed, gotB.TotalElapsed)
	}
	if !gotB.Running() {
		t.Error("Running timer state not reproduced")
	}

	gotC, _ := reopened.Get(c.ID)
	if gotC.Status != task.StatusCompleted {
		t.Errorf("Status not reproduced: %s", gotC.Status)
	}
}

func TestFindByIDPrefix(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	first, _ := st.Create("First", "", nil)
	second, _ := st.Create("Second", "", nil)

	// A shared one-character prefix may not exist between two random
	// uuids, so probe with each task's own prefix first.
	matches := st.FindByIDPrefix(first.ID[:8])
	if len(matches) != 1 || matches[0].ID != first.ID {
		t.Errorf("Prefix lookup failed: %+v", matches)
	}

	// Common prefix of both ids returns both, creation order first.
	common := commonPrefix(first.ID, second.ID)
	if common != "" {
		matches = st.FindByIDPrefix(common)
		if len(matches) != 2 {
			t.Fatalf("Expected 2 matches for common prefix %q, got %d", common, len(matches))
		}
		if matches[0].ID != first.ID || matches[1].ID != second.ID {
			t.Error("Prefix matches not in creation order")
		}
	}

	if got := st.FindByIDPrefix(""); len(got) != 0 {
		t.Errorf("Empty prefix should match nothing, got %d", len(got))
	}
}

func commonPrefix(a, b string) string {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a
}

func TestFindByTitle(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	st.Create("Write REPORT", "", nil)
	st.Create("write letter", "", nil)
	st.Create("Groceries", "", nil)

	matches := st.FindByTitle("write")
	if len(matches) != 2 {
		t.Fatalf("Expected 2 case-insensitive matches, got %d", len(matches))
	}
	if matches[0].Title != "Write REPORT" {
		t.Error("Title matches not in creation order")
	}
}

func TestSearchMatchesIDPrefixOrTitle(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	created, _ := st.Create("Unique needle", "", nil)
	st.Create("Other", "", nil)

	byTitle := st.Search("needle")
	if len(byTitle) != 1 || byTitle[0].ID != created.ID {
		t.Errorf("Search by title failed: %+v", byTitle)
	}

	byID := st.Search(created.ID[:8])
	if len(byID) != 1 || byID[0].ID != created.ID {
		t.Errorf("Search by id prefix failed: %+v", byID)
	}

	if got := st.Search("zzz-no-match"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}

func TestListOrdering(t *testing.T) {
	st, _ := testutil.OpenStore(t)

	late := time.Now().Add(3 * time.Hour)
	soon := time.Now().Add(1 * time.Hour)

	noDeadlineFirst, _ := st.Create("No deadline, created first", "", nil)
	lateTask, _ := st.Create("Late deadline", "", &late)
	soonTask, _ := st.Create("Soon deadline", "", &soon)
	noDeadlineSecond, _ := st.Create("No deadline, created second", "", nil)

	pending := st.ListPending()
	if len(pending) != 4 {
		t.Fatalf("Expected 4 pending, got %d", len(pending))
	}

	wantOrder := []string{soonTask.ID, lateTask.ID, noDeadlineFirst.ID, noDeadlineSecond.ID}
	for i, want := range wantOrder {
		if pending[i].ID != want {
			t.Fatalf("Position %d: got %q, want %q", i, pending[i].Title, want)
		}
	}
}

func TestCompletedTaskMovesBetweenLists(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	created, _ := st.Create("Write report", "Work", nil)

	st.Complete(created.ID)

	for _, p := range st.ListPending() {
		if p.ID == created.ID {
			t.Error("Completed task still listed as pending")
		}
	}

	found := false
	for _, c := range st.ListCompleted() {
		if c.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("Completed task missing from ListCompleted")
	}
}

func TestSweepRemovesOverdueRegardlessOfStatus(t *testing.T) {
	st, _ := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	past := clock.Now().Add(-time.Second)
	future := clock.Now().Add(time.Hour)

	expired, _ := st.Create("Expired pending", "", &past)
	expiredDone, _ := st.Create("Expired completed", "", &past)
	st.Complete(expiredDone.ID)
	expiredRunning, _ := st.Create("Expired with running timer", "", &past)
	st.StartTimer(expiredRunning.ID)
	keep, _ := st.Create("Future deadline", "", &future)
	keepForever, _ := st.Create("No deadline", "", nil)

	removed, err := st.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(removed) != 3 {
		t.Fatalf("Expected 3 removals, got %d", len(removed))
	}

	for _, id := range []string{expired.ID, expiredDone.ID, expiredRunning.ID} {
		if _, err := st.Get(id); !errors.Is(err, task.ErrNotFound) {
			t.Errorf("Task %s should be swept, got %v", id, err)
		}
		if got := st.Search(id); len(got) != 0 {
			t.Errorf("Swept task %s still found via Search", id)
		}
	}
	for _, id := range []string{keep.ID, keepForever.ID} {
		if _, err := st.Get(id); err != nil {
			t.Errorf("Task %s should survive sweep: %v", id, err)
		}
	}

	// Second sweep finds nothing new
	removed, err = st.Sweep()
	if err != nil {
		t.Fatalf("Second sweep failed: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("Second sweep removed %d tasks", len(removed))
	}
}

func TestSweepPersistsRemovals(t *testing.T) {
	st, path := testutil.OpenStore(t)
	clock := testutil.NewClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	st.SetClock(clock.Now)

	past := clock.Now().Add(-time.Minute)
	st.Create("Expired", "", &past)
	st.Create("Keeper", "", nil)

	if _, err := st.Sweep(); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	reopened := testutil.ReopenStore(t, path)
	if reopened.Len() != 1 {
		t.Errorf("Expected 1 task after reload, got %d", reopened.Len())
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	st, path := testutil.OpenStore(t)

	created, err := st.Create("Before breakage", "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Replace the store file with a directory so the rename fails.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	second, err := st.Create("After breakage", "", nil)
	if err == nil {
		t.Fatal("Expected save error")
	}

	// In-memory state stays authoritative for the next successful save.
	if _, err := st.Get(created.ID); err != nil {
		t.Errorf("Existing task lost after failed save: %v", err)
	}
	if _, err := st.Get(second.ID); err != nil {
		t.Errorf("New task should be kept in memory after failed save: %v", err)
	}
}
