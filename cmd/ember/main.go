package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ember2d/ember/internal/cliconfig"
	"github.com/ember2d/ember/internal/devreload"
	"github.com/ember2d/ember/internal/host"
	"github.com/ember2d/ember/pkg/log"
)

const shortDesc = "Run 2D games written in Lua"

var longHelp = strings.TrimSpace(`
Ember runs games written in Lua.

The first non-flag argument is the game: either a directory containing a
main.lua, or a single .lua file. Everything after it is handed to the
game untouched.

Host flags (--log-level, --dev, --tick-interval, --config) must come
before the game argument. --version and --help belong to the game
runtime and work without one.
`)

var exampleUsage = strings.TrimSpace(`
  ember mygame/
  ember --dev mygame/ --level 3
  ember --log-level debug game.lua
`)

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(argv []string) int {
	var exitCode int

	root := &cobra.Command{
		Use:     "ember [host flags] [game] [game args]",
		Short:   shortDesc,
		Long:    longHelp,
		Example: exampleUsage,
		// Flag parsing is two-phase: leading host flags are carved off
		// by cliconfig, everything else is the game's argument vector.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(argv[0], args)
			exitCode = code
			return err
		},
	}
	root.SetArgs(argv[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		return 1
	}
	return exitCode
}

func run(argv0 string, args []string) (int, error) {
	cfg := cliconfig.DefaultConfig()

	hf, err := cliconfig.ParseHostFlags(&cfg, args)
	if err != nil {
		return 1, err
	}

	cfgFile := hf.ConfigPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return 1, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, hf.Changed); err != nil {
			return 1, err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&cfg, hf.Changed); err != nil {
		return 1, err
	}
	if err := cfg.Validate(); err != nil {
		return 1, err
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration",
		log.String("log_level", cfg.LogLevel),
		log.Bool("dev_reload", cfg.DevReload),
		log.Duration("tick_interval", cfg.TickInterval),
	)

	h := host.New(host.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DevReload {
		dir, ok := gameDir(hf.Rest)
		if !ok {
			logger.Warn("dev reload enabled but no game argument, skipping watcher")
		} else {
			w := devreload.New(dir, func(path string) {
				h.RequestRestart(host.TableVariant(
					host.Pair(host.StringVariant("reason"), host.StringVariant("devreload")),
					host.Pair(host.StringVariant("path"), host.StringVariant(path)),
				))
			}, logger, devreload.Config{})
			if err := w.Start(ctx); err != nil {
				return 1, fmt.Errorf("watch %s: %w", dir, err)
			}
			defer w.Stop()
		}
	}

	rawArgs := append([]string{argv0}, hf.Rest...)
	return runSegments(ctx, h, rawArgs, cfg.TickInterval)
}

// runSegments drives the init/iterate/shutdown cycle, re-entering init
// while a restart is pending. Each pass is one run segment.
func runSegments(ctx context.Context, h *host.Host, rawArgs []string, tick time.Duration) (int, error) {
	for {
		g, res, err := h.Init(rawArgs)
		if err != nil {
			h.Shutdown(g, host.Failure)
			return 1, err
		}
		if g == nil {
			// Version or help output; nothing to run.
			h.Shutdown(nil, res)
			return 0, nil
		}

		for res == host.Continue {
			if ctx.Err() != nil {
				res = host.Success
				break
			}
			res = h.Iterate(g)
			if res == host.Continue && tick > 0 {
				time.Sleep(tick)
			}
		}
		h.Shutdown(g, res)

		if res == host.Failure {
			return 1, nil
		}
		if ctx.Err() != nil || !h.RestartPending() {
			return 0, nil
		}
	}
}

// gameDir resolves the directory to watch from the game argument: the
// game directory itself, or the containing directory of a .lua file.
func gameDir(rest []string) (string, bool) {
	for _, tok := range rest {
		if strings.HasPrefix(tok, "--") {
			continue
		}
		if info, err := os.Stat(tok); err == nil && info.IsDir() {
			return tok, true
		}
		return filepath.Dir(tok), true
	}
	return "", false
}

func newLogger(level string) log.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zl := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	return log.NewZerologAdapterWithLogger(zl)
}
