package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/tasktrack/internal/storage"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

func TestSetVersionInfo(t *testing.T) {
	// Save originals.
	origVersion := appVersion
	origCommit := appCommit
	origDate := appDate
	defer func() {
		appVersion = origVersion
		appCommit = origCommit
		appDate = origDate
	}()

	SetVersionInfo("1.2.3", "abc1234", "2026-02-13")

	if appVersion != "1.2.3" {
		t.Errorf("appVersion = %q, want 1.2.3", appVersion)
	}
	if appCommit != "abc1234" {
		t.Errorf("appCommit = %q, want abc1234", appCommit)
	}
	if appDate != "2026-02-13" {
		t.Errorf("appDate = %q, want 2026-02-13", appDate)
	}
}

func TestExecute_TooManyArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"one.txt", "two.txt"})

	err := Execute()
	if err == nil {
		t.Fatal("expected error for two file arguments")
	}
	if !strings.Contains(err.Error(), "accepts at most 1 arg") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExecute_VersionSubcommand(t *testing.T) {
	origVersion := appVersion
	origCommit := appCommit
	origDate := appDate
	defer func() {
		appVersion = origVersion
		appCommit = origCommit
		appDate = origDate
	}()
	appVersion = "test-ver"
	appCommit = "test-commit"
	appDate = "test-date"

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"version"})

	if err := Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "tt test-ver") {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestSubcommands_Registration(t *testing.T) {
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{"version", "shell", "browse", "metrics"} {
		if !registered[name] {
			t.Errorf("%s command not registered on root", name)
		}
	}
}

// withShellServices points the CLI at a task store in a temp dir.
func withShellServices(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	origStore, origConfig, origCatalog := Store, Config, Catalog
	t.Cleanup(func() {
		Store, Config, Catalog = origStore, origConfig, origCatalog
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	Store = storage.NewTaskFileStore(dir)
	Config = &models.Config{
		DataDir:     dir,
		DefaultFile: "db.txt",
		QuitWord:    "quit",
		Sort:        models.SortConfig{MaxSteps: 16},
	}
	Catalog = nil
	return dir
}

func TestExecute_ShellQuitsAtTopLevel(t *testing.T) {
	withShellServices(t)

	var stdout bytes.Buffer
	rootCmd.SetIn(strings.NewReader("help\nquit\n"))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})

	if err := Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "open a task file") {
		t.Errorf("expected help text, got:\n%s", stdout.String())
	}
}

func TestExecute_ShellOpensFileArgument(t *testing.T) {
	dir := withShellServices(t)
	line := "01.03.2024|09:00|05.03.2024|18:00|Smith|Write the report|Received\n"
	if err := os.WriteFile(filepath.Join(dir, "work.txt"), []byte(line), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	rootCmd.SetIn(strings.NewReader("quit\ny\nquit\n"))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"work.txt"})

	if err := Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Write the report") {
		t.Errorf("expected the file to be shown, got:\n%s", stdout.String())
	}
}

func TestRunShell_NotInitialized(t *testing.T) {
	origStore := Store
	defer func() { Store = origStore }()
	Store = nil

	err := runShell(shellCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("expected not initialized error, got %v", err)
	}
}
