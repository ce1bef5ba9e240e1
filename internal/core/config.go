// Package core contains the task tracker's business logic: field
// validation and normalization, the task collection, the shell sort engine,
// the canned analytical queries, and configuration loading.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// ConfigFileName is the base name of the YAML configuration file.
const ConfigFileName = ".ttconfig"

// ConfigurationManager defines the interface for loading and validating the
// tracker configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the directory where .ttconfig resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .ttconfig.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *models.Config {
	return &models.Config{
		DataDir:     ".",
		DefaultFile: "db.txt",
		QuitWord:    "quit",
		EventLog:    ".tt_events.jsonl",
		Sort:        models.SortConfig{MaxSteps: DefaultMaxGapSteps},
	}
}

// LoadConfig reads .ttconfig from the base path using Viper. If the file
// does not exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("default_file", cfg.DefaultFile)
	v.SetDefault("quit_word", cfg.QuitWord)
	v.SetDefault("event_log", cfg.EventLog)
	v.SetDefault("sort.max_steps", cfg.Sort.MaxSteps)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	cfg.DataDir = v.GetString("data_dir")
	cfg.DefaultFile = v.GetString("default_file")
	cfg.QuitWord = v.GetString("quit_word")
	cfg.EventLog = v.GetString("event_log")
	cfg.Sort.MaxSteps = v.GetInt("sort.max_steps")

	if prompts := v.GetStringMapString("prompts"); len(prompts) > 0 {
		cfg.Prompts = prompts
	}

	return cfg, nil
}

// ValidateConfig checks cfg for invalid values and reports every problem in
// a single error.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.DataDir == "" {
		errs = append(errs, "data_dir must not be empty")
	}
	if err := ValidatePath(cfg.DefaultFile); err != nil {
		errs = append(errs, fmt.Sprintf("default_file %q must be a bare .txt file name", cfg.DefaultFile))
	}
	if IsBlank(cfg.QuitWord) {
		errs = append(errs, "quit_word must not be empty")
	}
	if cfg.Sort.MaxSteps < 1 || cfg.Sort.MaxSteps > 30 {
		errs = append(errs, fmt.Sprintf("sort.max_steps %d is invalid, must be between 1 and 30", cfg.Sort.MaxSteps))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
