package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, text
	File       string          `yaml:"file"`       // rotated log file
	DebugMode  bool            `yaml:"debug_mode"` // false = no logging unless File is set explicitly
	MaxSizeMB  int             `yaml:"max_size_mb"`
	MaxBackups int             `yaml:"max_backups"`
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}
