// Package ember embeds a Lua game runtime behind a host-driven callback
// surface.
//
// The host owns the loop: it calls Init once to boot the game into a
// coroutine, Iterate once per frame to advance it, and Shutdown when the
// game is done. The game cooperates by yielding from its boot coroutine
// every frame.
//
// Example usage:
//
//	h := ember.New()
//	g, res, err := h.Init(os.Args)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for res == ember.Continue {
//	    res = h.Iterate(g)
//	}
//	h.Shutdown(g, res)
//
// Run wraps the loop, including the restart protocol, for callers that
// do not need per-frame control.
package ember

import (
	"github.com/ember2d/ember/internal/host"
	"github.com/ember2d/ember/internal/version"
)

// Host drives one cooperative game through init, iterate, and shutdown.
type Host = host.Host

// Globals is the live runtime handle for one run segment.
type Globals = host.Globals

// Result reports what the host should do after a callback returns.
type Result = host.Result

// Results returned by Init and Iterate.
const (
	Continue = host.Continue
	Success  = host.Success
	Failure  = host.Failure
)

// Event is an opaque input event handed to the bridge. Delivery does not
// advance the game.
type Event = host.Event

// Variant is a language-neutral value carried across restarts.
type Variant = host.Variant

// VariantPair is one key/value entry of a table Variant.
type VariantPair = host.VariantPair

// Variant constructors.
var (
	NilVariant    = host.NilVariant
	BoolVariant   = host.BoolVariant
	NumberVariant = host.NumberVariant
	StringVariant = host.StringVariant
	TableVariant  = host.TableVariant
	Pair          = host.Pair
)

// Option configures a Host.
type Option = host.Option

// Host options.
var (
	WithLogger         = host.WithLogger
	WithStdout         = host.WithStdout
	WithConsole        = host.WithConsole
	WithStateListener  = host.WithStateListener
	WithBinaryVersion  = host.WithBinaryVersion
	WithLibraryVersion = host.WithLibraryVersion
)

// Version is the runtime release version.
const Version = version.Version

// New creates a host with the given options.
func New(opts ...Option) *Host {
	return host.New(opts...)
}

// Run executes the full lifecycle for rawArgs (program path first) and
// returns the process exit code. It loops run segments while the game
// requests restarts.
func Run(rawArgs []string, opts ...Option) int {
	h := New(opts...)
	for {
		g, res, err := h.Init(rawArgs)
		if err != nil {
			h.Shutdown(g, Failure)
			return 1
		}
		if g == nil {
			h.Shutdown(nil, res)
			return 0
		}
		for res == Continue {
			res = h.Iterate(g)
		}
		h.Shutdown(g, res)
		if res == Failure {
			return 1
		}
		if !h.RestartPending() {
			return 0
		}
	}
}
