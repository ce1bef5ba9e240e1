package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/tasktrack/internal/observability"
	"github.com/valter-silva-au/tasktrack/internal/session"
)

var shellCmd = &cobra.Command{
	Use:   "shell [file]",
	Short: "Start the interactive task prompt",
	Long: `Start the nested command prompt. This is what tt runs when no
subcommand is given.

Levels:
  top   no file open: path, date, help, quit
  file  a file is open: queries, sort, function, edit, remove, save, file
  task  editing the open file record by record: add, edit, remove, save

Typing the quit word at any question abandons that request only.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeTaskFiles,
	RunE:              runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	if Store == nil || Config == nil {
		return fmt.Errorf("task store not initialized")
	}

	var startPath string
	if len(args) == 1 {
		startPath = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s := session.New(session.Options{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Store:       Store,
		Catalog:     Catalog,
		Recorder:    observability.NewRecorder(EventLog),
		DefaultFile: Config.DefaultFile,
		QuitWord:    Config.QuitWord,
		MaxSteps:    Config.Sort.MaxSteps,
	})
	return s.Run(ctx, startPath)
}
