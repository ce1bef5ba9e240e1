package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "tt [file]",
	Short: "tasktrack - a task tracker for plain text files",
	Long: `tasktrack (tt) keeps tasks in pipe-delimited text files and edits them
through a nested command prompt.

Run without arguments to start at the top level, or pass a task file name
to open it straight away. Type "help" at any prompt for the commands
available there.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeTaskFiles,
	SilenceUsage:      true,
	RunE:              runShell,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tt %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
