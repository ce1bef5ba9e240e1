package models

// SortConfig tunes the shell sort engine.
type SortConfig struct {
	MaxSteps int `yaml:"max_steps" mapstructure:"max_steps"`
}

// Config holds the settings read from .ttconfig via Viper.
type Config struct {
	DataDir     string            `yaml:"data_dir" mapstructure:"data_dir"`
	DefaultFile string            `yaml:"default_file" mapstructure:"default_file"`
	QuitWord    string            `yaml:"quit_word" mapstructure:"quit_word"`
	EventLog    string            `yaml:"event_log" mapstructure:"event_log"`
	Sort        SortConfig        `yaml:"sort" mapstructure:"sort"`
	Prompts     map[string]string `yaml:"prompts,omitempty" mapstructure:"prompts"`
}
