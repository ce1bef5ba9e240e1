// Package internal provides the App struct that wires all components of the
// tasktrack system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/tasktrack/internal/cli"
	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/internal/observability"
	"github.com/valter-silva-au/tasktrack/internal/session"
	"github.com/valter-silva-au/tasktrack/internal/storage"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// App holds all service dependencies for the tasktrack system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Storage layer
	Store storage.TaskStore

	// Presentation
	Catalog *session.Catalog

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the tasktrack system.
// basePath is the directory holding .ttconfig.yaml; relative data and log
// paths in the configuration are resolved against it.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Store = storage.NewTaskFileStore(resolve(basePath, cfg.DataDir))

	// --- Prompt text ---
	app.Catalog, err = session.LoadCatalog(cfg.Prompts)
	if err != nil {
		return nil, fmt.Errorf("loading prompts: %w", err)
	}

	// --- Observability ---
	if cfg.EventLog != "" {
		app.EventLog, err = observability.NewJSONLEventLog(resolve(basePath, cfg.EventLog))
		if err != nil {
			// Non-fatal: disable observability if log can't be created.
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Wire CLI ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Store = app.Store
	cli.Catalog = app.Catalog
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

func resolve(basePath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// ResolveBasePath determines the base directory. It checks TT_HOME first,
// then walks up from the working directory looking for .ttconfig.yaml, and
// falls back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("TT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName+".yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
