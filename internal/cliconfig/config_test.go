package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DevReload {
		t.Error("DevReload enabled by default")
	}
	if cfg.TickInterval != time.Millisecond {
		t.Errorf("TickInterval = %v, want 1ms", cfg.TickInterval)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty level", func(c *Config) { c.LogLevel = "" }, true},
		{"zero tick interval", func(c *Config) { c.TickInterval = 0 }, false},
		{"negative tick interval", func(c *Config) { c.TickInterval = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
