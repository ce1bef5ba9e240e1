package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/tasktrack/internal/core"
)

// completeTaskFiles lists the task files in the data directory.
func completeTaskFiles(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || Config == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dir := Config.DataDir
	if !filepath.IsAbs(dir) && BasePath != "" {
		dir = filepath.Join(BasePath, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || core.ValidatePath(name) != nil {
			continue
		}
		if strings.HasPrefix(name, toComplete) {
			files = append(files, name)
		}
	}
	return files, cobra.ShellCompDirectiveNoFileComp
}
