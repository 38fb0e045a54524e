package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Loboguar4/TaskForge/internal/task"
)

// formatElapsed renders a duration the way the stopwatch reports it:
// whole minutes and seconds.
func formatElapsed(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}

// taskLine renders the one-line list entry for a task.
func taskLine(t task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", t.ShortID(), t.Title)
	if t.Category != "" {
		fmt.Fprintf(&b, " (%s)", t.Category)
	}
	fmt.Fprintf(&b, " | deadline: %s", task.FormatDeadline(t.Deadline))
	if t.Running() {
		b.WriteString(" | timer: running")
	}
	return b.String()
}

// printTasks prints a titled section of tasks with their details.
func printTasks(title string, tasks []task.Task) {
	fmt.Printf("\n--- %s (%d) ---\n", title, len(tasks))
	for _, t := range tasks {
		fmt.Println(taskLine(t))
		if t.Description != "" {
			fmt.Printf("    desc: %s\n", t.Description)
		}
		if t.TotalElapsed > 0 || t.Running() {
			fmt.Printf("    last: %s | total: %s\n",
				formatElapsed(t.LastElapsed), formatElapsed(t.TotalElapsed))
		}
	}
}
