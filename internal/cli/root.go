package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose        bool
	storePath      string
	discardCorrupt bool

	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskforge",
		Short: "TaskForge - personal task and time tracker",
		Long: `TaskForge is a personal task tracker: create, edit and complete tasks,
time your work per task with a stopwatch, and let overdue tasks expire
automatically in the background.

Run it without arguments for the interactive menu, or use the
subcommands for scripting.`,
		RunE:          runMenu, // Default action is the interactive menu
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Task file path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&discardCorrupt, "discard-corrupt", false,
		"Move an unreadable task file aside and start fresh instead of aborting")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(elapsedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
