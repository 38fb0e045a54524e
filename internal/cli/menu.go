package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/sweeper"
	"github.com/Loboguar4/TaskForge/internal/task"
)

// console reads user input line by line while staying responsive to
// shutdown signals. Store operations take their own lock internally,
// so no lock is ever held while we sit here waiting for input.
type console struct {
	ctx   context.Context
	lines <-chan string
}

func newConsole(ctx context.Context) *console {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &console{ctx: ctx, lines: lines}
}

// prompt prints the label and waits for one line. The second return is
// false when input is closed or shutdown was signaled.
func (c *console) prompt(label string) (string, bool) {
	fmt.Print(label)
	select {
	case <-c.ctx.Done():
		fmt.Println()
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			fmt.Println()
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func (c *console) confirm(label string) bool {
	answer, ok := c.prompt(label)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func runMenu(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sw := sweeper.New(app.Store, app.Config.Sweep.Interval, app.Log)
	if app.Config.Sweep.Enabled {
		sw.Start()
		defer sw.Stop()
	}

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	fmt.Println("\n\t=== TaskForge ===")
	fmt.Printf("Task file: %s | deadlines: %s\n", app.Config.Store.Path, task.DeadlineLayout)

	c := newConsole(ctx)
	for {
		choice, ok := c.prompt("\n[a]dd [l]ist [c]rono [e]dit [m]ark done [d]elete [q]uit: ")
		if !ok {
			return nil
		}

		switch strings.ToLower(choice) {
		case "q":
			return nil
		case "a":
			menuAdd(app, c)
		case "l":
			menuList(app)
		case "c":
			menuTimer(app, c)
		case "e":
			menuEdit(app, c)
		case "m":
			menuMark(app, c)
		case "d":
			menuDelete(app, c)
		default:
			fmt.Println("Unknown option.")
		}
	}
}

func menuAdd(app *App, c *console) {
	title, ok := c.prompt("Title: ")
	if !ok {
		return
	}

	category, ok := c.prompt("Category (optional): ")
	if !ok {
		return
	}
	desc, ok := c.prompt("Description (optional): ")
	if !ok {
		return
	}

	deadlineRaw, ok := c.prompt(fmt.Sprintf("Deadline (%s) or Enter for none: ", task.DeadlineLayout))
	if !ok {
		return
	}
	deadline, err := task.ParseDeadline(deadlineRaw)
	if err != nil {
		fmt.Println(err)
		return
	}

	t, err := app.Store.Create(title, category, deadline)
	if err != nil {
		fmt.Println(err)
		return
	}
	if desc != "" {
		if err := app.Store.Edit(t.ID, store.Update{Description: &desc}); err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Printf("Created task [%s]\n", t.ShortID())
}

func menuList(app *App) {
	sweepAndReport(app)

	if app.Store.Len() == 0 {
		fmt.Println("No tasks recorded.")
		return
	}
	printTasks("Pending", app.Store.ListPending())
	printTasks("Completed", app.Store.ListCompleted())
}

func menuTimer(app *App, c *console) {
	t, ok := menuSelect(app, c, "Task to time (id or title): ")
	if !ok {
		return
	}

	if t.Running() {
		elapsed, err := app.Store.StopTimer(t.ID)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Stopwatch stopped: %s\n", formatElapsed(elapsed))
		return
	}

	if err := app.Store.StartTimer(t.ID); err != nil {
		fmt.Println(err)
		return
	}

	answer, ok := c.prompt("Stopwatch running. Enter stops it, 'k' keeps it running: ")
	if !ok || strings.ToLower(answer) == "k" {
		fmt.Println("Stopwatch left running.")
		return
	}

	elapsed, err := app.Store.StopTimer(t.ID)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Stopwatch saved: %s\n", formatElapsed(elapsed))
}

func menuEdit(app *App, c *console) {
	t, ok := menuSelect(app, c, "Task to edit (id or title): ")
	if !ok {
		return
	}

	fmt.Println("Leave a field blank to keep its value.")
	var upd store.Update

	if title, ok := c.prompt(fmt.Sprintf("Title [%s]: ", t.Title)); !ok {
		return
	} else if title != "" {
		upd.Title = &title
	}

	if category, ok := c.prompt(fmt.Sprintf("Category [%s]: ", t.Category)); !ok {
		return
	} else if category != "" {
		upd.Category = &category
	}

	if desc, ok := c.prompt(fmt.Sprintf("Description [%s]: ", t.Description)); !ok {
		return
	} else if desc != "" {
		upd.Description = &desc
	}

	deadlineRaw, ok := c.prompt(fmt.Sprintf("Deadline [%s] ('-' clears): ", task.FormatDeadline(t.Deadline)))
	if !ok {
		return
	}
	switch deadlineRaw {
	case "":
	case "-":
		upd.ClearDeadline = true
	default:
		deadline, err := task.ParseDeadline(deadlineRaw)
		if err != nil {
			fmt.Println(err)
			return
		}
		upd.Deadline = deadline
	}

	if c.confirm("Mark as completed? (y/N): ") {
		status := task.StatusCompleted
		upd.Status = &status
	}

	if err := app.Store.Edit(t.ID, upd); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Task updated.")
}

func menuMark(app *App, c *console) {
	t, ok := menuSelect(app, c, "Task to complete (id or title): ")
	if !ok {
		return
	}

	if err := app.Store.Complete(t.ID); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Completed task [%s] %s\n", t.ShortID(), t.Title)
}

func menuDelete(app *App, c *console) {
	t, ok := menuSelect(app, c, "Task to delete (id or title): ")
	if !ok {
		return
	}

	if !c.confirm(fmt.Sprintf("Delete [%s]? (y/N): ", t.Title)) {
		return
	}

	if err := app.Store.Delete(t.ID); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Task deleted.")
}

// menuSelect asks for an id prefix or title fragment and resolves it to
// one task, asking the user to pick when several match.
func menuSelect(app *App, c *console, label string) (task.Task, bool) {
	query, ok := c.prompt(label)
	if !ok || query == "" {
		return task.Task{}, false
	}

	matches := app.Store.Search(query)
	switch len(matches) {
	case 0:
		fmt.Println("No tasks found.")
		return task.Task{}, false
	case 1:
		return matches[0], true
	}

	for i, t := range matches {
		fmt.Printf("%d) [%s] %s\n", i+1, t.ShortID(), t.Title)
	}
	answer, ok := c.prompt("Pick one: ")
	if !ok {
		return task.Task{}, false
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(matches) {
		fmt.Println("Invalid choice.")
		return task.Task{}, false
	}
	return matches[idx-1], true
}
