package config

import (
	"github.com/rshade/datagrid/internal/logging"
)

// ToLoggingConfig converts the logging section to a logging.Config for
// logging.NewLogger. When debug is set the level is forced to debug.
func (lc LoggingConfig) ToLoggingConfig(debug bool) logging.Config {
	level := lc.Level
	if debug {
		level = "debug"
	}
	return logging.Config{
		Level:  level,
		Format: lc.Format,
		File:   lc.File,
	}
}

// GetLoggingConfig returns the logging section of the global configuration.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
