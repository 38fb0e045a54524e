package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id-or-title>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id-or-title>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runDone(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if err := app.Store.Complete(t.ID); err != nil {
		return err
	}
	fmt.Printf("Completed task [%s] %s\n", t.ShortID(), t.Title)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	if err := app.Store.Delete(t.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task [%s] %s\n", t.ShortID(), t.Title)
	return nil
}
