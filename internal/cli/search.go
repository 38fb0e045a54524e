package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tasks by id prefix or title fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sweepAndReport(app)

	matches := app.Store.Search(args[0])
	if len(matches) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, t := range matches {
		fmt.Println(taskLine(t))
	}
	return nil
}
