package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-or-title>",
	Short: "Edit a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("category", "", "New category")
	editCmd.Flags().String("desc", "", "New description")
	editCmd.Flags().String("deadline", "", "New deadline")
	editCmd.Flags().Bool("clear-deadline", false, "Remove the deadline")
}

func runEdit(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	t, err := app.resolveTask(args[0])
	if err != nil {
		return err
	}

	var upd store.Update
	changed := false

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		upd.Title = &v
		changed = true
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		upd.Category = &v
		changed = true
	}
	if cmd.Flags().Changed("desc") {
		v, _ := cmd.Flags().GetString("desc")
		upd.Description = &v
		changed = true
	}
	if cmd.Flags().Changed("deadline") {
		v, _ := cmd.Flags().GetString("deadline")
		deadline, err := task.ParseDeadline(v)
		if err != nil {
			return err
		}
		upd.Deadline = deadline
		changed = true
	}
	if v, _ := cmd.Flags().GetBool("clear-deadline"); v {
		upd.ClearDeadline = true
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	if err := app.Store.Edit(t.ID, upd); err != nil {
		return err
	}
	fmt.Printf("Updated task [%s]\n", t.ShortID())
	return nil
}
