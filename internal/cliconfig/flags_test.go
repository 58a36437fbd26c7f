package cliconfig

import (
	"reflect"
	"testing"
	"time"
)

func TestParseHostFlags(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantRest []string
		check    func(t *testing.T, cfg Config, hf HostFlags)
	}{
		{
			"no flags",
			[]string{"mygame", "arg1"},
			[]string{"mygame", "arg1"},
			nil,
		},
		{
			"empty argv",
			[]string{},
			[]string{},
			nil,
		},
		{
			"host flags consumed",
			[]string{"--log-level", "debug", "--dev", "mygame"},
			[]string{"mygame"},
			func(t *testing.T, cfg Config, hf HostFlags) {
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
				}
				if !cfg.DevReload {
					t.Error("DevReload not set")
				}
				if !hf.Changed["log-level"] || !hf.Changed["dev"] {
					t.Errorf("Changed = %v, want log-level and dev", hf.Changed)
				}
			},
		},
		{
			"equals form",
			[]string{"--tick-interval=4ms", "mygame"},
			[]string{"mygame"},
			func(t *testing.T, cfg Config, hf HostFlags) {
				if cfg.TickInterval != 4*time.Millisecond {
					t.Errorf("TickInterval = %v, want 4ms", cfg.TickInterval)
				}
			},
		},
		{
			"config path",
			[]string{"--config", "/tmp/ember.toml", "mygame"},
			[]string{"mygame"},
			func(t *testing.T, cfg Config, hf HostFlags) {
				if hf.ConfigPath != "/tmp/ember.toml" {
					t.Errorf("ConfigPath = %q", hf.ConfigPath)
				}
			},
		},
		{
			"version flag passes through",
			[]string{"--version"},
			[]string{"--version"},
			nil,
		},
		{
			"help flag passes through",
			[]string{"--help"},
			[]string{"--help"},
			nil,
		},
		{
			"game flags after path untouched",
			[]string{"--dev", "mygame", "--log-level", "shout"},
			[]string{"mygame", "--log-level", "shout"},
			func(t *testing.T, cfg Config, hf HostFlags) {
				if cfg.LogLevel != "info" {
					t.Errorf("LogLevel = %q, game-side flag must not apply", cfg.LogLevel)
				}
			},
		},
		{
			"bare double dash stops scan",
			[]string{"--", "--dev"},
			[]string{"--", "--dev"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			hf, err := ParseHostFlags(&cfg, tt.argv)
			if err != nil {
				t.Fatalf("ParseHostFlags: %v", err)
			}
			if !reflect.DeepEqual(hf.Rest, tt.wantRest) {
				t.Errorf("Rest = %v, want %v", hf.Rest, tt.wantRest)
			}
			if tt.check != nil {
				tt.check(t, cfg, hf)
			}
		})
	}
}

func TestParseHostFlags_BadValue(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := ParseHostFlags(&cfg, []string{"--tick-interval", "soon", "mygame"}); err == nil {
		t.Error("ParseHostFlags with bad duration = nil error")
	}
}
