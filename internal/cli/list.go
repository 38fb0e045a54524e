package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("pending", false, "Only pending tasks")
	listCmd.Flags().Bool("completed", false, "Only completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	pendingOnly, _ := cmd.Flags().GetBool("pending")
	completedOnly, _ := cmd.Flags().GetBool("completed")

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Expire overdue tasks before showing the list, the same pass the
	// background sweeper runs.
	sweepAndReport(app)

	if app.Store.Len() == 0 {
		fmt.Println("No tasks recorded.")
		return nil
	}

	if !completedOnly {
		printTasks("Pending", app.Store.ListPending())
	}
	if !pendingOnly {
		printTasks("Completed", app.Store.ListCompleted())
	}
	return nil
}

// sweepAndReport runs one expiry pass and echoes each removal, like
// the background sweeper does in its log.
func sweepAndReport(app *App) {
	removed, err := app.Store.Sweep()
	for _, t := range removed {
		fmt.Printf("[auto] removed expired task [%s] %s\n", t.ShortID(), t.Title)
	}
	if err != nil {
		app.Log.Warnw("sweep could not persist", "error", err)
	}
}
