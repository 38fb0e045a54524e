package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/task"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().String("category", "", "Activity category")
	addCmd.Flags().String("desc", "", "Longer description")
	addCmd.Flags().String("deadline", "", `Deadline, e.g. "2026-09-01 18:00" (empty means none)`)
}

func runAdd(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	desc, _ := cmd.Flags().GetString("desc")
	deadlineRaw, _ := cmd.Flags().GetString("deadline")

	deadline, err := task.ParseDeadline(deadlineRaw)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.Store.Create(args[0], category, deadline)
	if err != nil {
		return err
	}

	if desc != "" {
		if err := app.Store.Edit(t.ID, store.Update{Description: &desc}); err != nil {
			return err
		}
	}

	fmt.Printf("Created task [%s] %s\n", t.ShortID(), t.Title)
	return nil
}
