package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (EMBER_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("EMBER_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("dev", os.Getenv("EMBER_DEV_RELOAD"), &cfg.DevReload)
	return s.setDuration("tick-interval", os.Getenv("EMBER_TICK_INTERVAL"), &cfg.TickInterval)
}
