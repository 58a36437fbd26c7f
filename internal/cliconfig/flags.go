package cliconfig

import (
	"strings"

	pflag "github.com/spf13/pflag"
)

// HostFlags is the result of carving host-level flags off the front of
// the raw argument vector. Everything from the first token the host does
// not recognize onward belongs to the game and is passed through to the
// execution bridge untouched.
type HostFlags struct {
	// ConfigPath is the --config override, empty when unset.
	ConfigPath string

	// Rest is the remaining argument vector (game path and game args).
	Rest []string

	// Changed records which host flags were explicitly set, for
	// file/env precedence.
	Changed map[string]bool
}

// ParseHostFlags extracts leading host flags from argv (which excludes
// the program path) and applies them onto cfg. Unrecognized tokens,
// including --version and --help, are left for the bridge.
func ParseHostFlags(cfg *Config, argv []string) (HostFlags, error) {
	hf := HostFlags{Changed: map[string]bool{}}

	fs := pflag.NewFlagSet("ember", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringVar(&hf.ConfigPath, "config", "", "path to config file (default: ~/.ember/config.toml)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.DevReload, "dev", cfg.DevReload, "restart the game when its source changes")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "host-side delay between ticks")

	leading, rest := splitHostArgs(fs, argv)
	if err := fs.Parse(leading); err != nil {
		return hf, err
	}
	fs.Visit(func(f *pflag.Flag) { hf.Changed[f.Name] = true })

	hf.Rest = rest
	return hf, nil
}

// splitHostArgs walks argv from the front, collecting tokens that belong
// to flags registered on fs. The scan stops at the first token that is
// not a recognized host flag.
func splitHostArgs(fs *pflag.FlagSet, argv []string) (leading, rest []string) {
	i := 0
	for i < len(argv) {
		tok := argv[i]
		if !strings.HasPrefix(tok, "--") || tok == "--" {
			break
		}
		name := strings.TrimPrefix(tok, "--")
		hasValue := false
		if eq := strings.Index(name, "="); eq >= 0 {
			name = name[:eq]
			hasValue = true
		}
		f := fs.Lookup(name)
		if f == nil {
			break
		}
		leading = append(leading, tok)
		i++
		if !hasValue && f.Value.Type() != "bool" && i < len(argv) {
			leading = append(leading, argv[i])
			i++
		}
	}
	return leading, argv[i:]
}
