package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <id-or-title>",
	Short: "Start the task's stopwatch",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop <id-or-title>",
	Short: "Stop the task's stopwatch and record the run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var elapsedCmd = &cobra.Command{
	Use:   "elapsed <id-or-title>",
	Short: "Show the task's live total time, including a running stopwatch",
	Args:  cobra.ExactArgs(1),
	RunE:  runElapsed,
}

func runStart(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if err := app.Store.StartTimer(t.ID); err != nil {
		return err
	}
	fmt.Printf("Timer started for [%s] %s\n", t.ShortID(), t.Title)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	elapsed, err := app.Store.StopTimer(t.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Timer stopped for [%s] %s: %s\n", t.ShortID(), t.Title, formatElapsed(elapsed))
	return nil
}

func runElapsed(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	total, err := app.Store.ElapsedNow(t.ID)
	if err != nil {
		return err
	}

	state := "stopped"
	if t.Running() {
		state = "running"
	}
	fmt.Printf("[%s] %s: %s (%s)\n", t.ShortID(), t.Title, formatElapsed(total), state)
	return nil
}
