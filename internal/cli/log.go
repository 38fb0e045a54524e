package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recorded timer runs",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().Int("limit", 20, "Number of runs to show")
	logCmd.Flags().Bool("totals", false, "Aggregate recorded time per task instead")
}

func runLog(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	totals, _ := cmd.Flags().GetBool("totals")

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Runs == nil {
		return fmt.Errorf("run log is disabled (runlog.enabled: false)")
	}

	if totals {
		rows, err := app.Runs.TotalsByTask()
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No timer runs recorded.")
			return nil
		}
		for _, row := range rows {
			fmt.Printf("%-30s  %3d runs  %s\n", row.Title, row.Runs, formatElapsed(row.Total))
		}
		return nil
	}

	runs, err := app.Runs.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No timer runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-30s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Title,
			formatElapsed(r.Duration),
		)
	}
	return nil
}
