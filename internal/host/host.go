// Package host implements the execution bridge between a callback-driven
// host loop and the embedded Lua interpreter.
//
// The host calls four entry points, strictly sequentially from one
// goroutine: Init once, then Iterate/Event repeatedly, then Shutdown
// exactly once. Init performs the one-shot bootstrap and hands back an
// opaque Globals; Iterate resumes the application's cooperative task one
// step; Shutdown tears the runtime handle down. A restart request
// carries a typed Variant payload across the teardown/re-init boundary.
package host

import (
	"io"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/ember2d/ember/internal/args"
	"github.com/ember2d/ember/internal/version"
	"github.com/ember2d/ember/pkg/log"
)

// Result is what a callback reports back to the host loop.
type Result int

const (
	// Continue tells the host to keep iterating.
	Continue Result = iota

	// Success tells the host to terminate with a zero exit status.
	Success

	// Failure tells the host to terminate with a failure exit status.
	Failure
)

// String returns a human-readable representation of the result.
func (r Result) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Event is delivered through the host's event callback. The bridge
// treats it as opaque; see (*Host).Event.
type Event interface{}

// Console attaches an output console before early prints. Only the
// Windows build has a real implementation; everywhere else attaching is
// a no-op.
type Console interface {
	Attach() error
}

type noopConsole struct{}

func (noopConsole) Attach() error { return nil }

// Globals is the opaque per-run state handed back to the host after a
// successful init. It owns the runtime handle for one process lifetime
// segment; no other component may hold a reference past teardown.
type Globals struct {
	l        *lua.LState
	co       *lua.LState
	fn       *lua.LFunction
	stackpos int
	closed   bool
}

// options holds the optional configuration for a Host.
type options struct {
	logger         log.Logger
	stdout         io.Writer
	console        Console
	normalizer     args.Normalizer
	binaryVersion  string
	libraryVersion func() string
	listener       StateListener
	teardownHook   func()
}

func defaultOptions() options {
	return options{
		logger:         log.NewNoopLogger(),
		stdout:         os.Stdout,
		console:        noopConsole{},
		normalizer:     args.NewPlatform(),
		binaryVersion:  version.Version,
		libraryVersion: version.Library,
	}
}

// Option configures optional behavior of a Host.
type Option func(*options)

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStdout redirects the --version and --help output.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithConsole sets the console collaborator attached before the
// --version print.
func WithConsole(c Console) Option {
	return func(o *options) {
		o.console = c
	}
}

// WithNormalizer replaces the default argument normalizer.
func WithNormalizer(n args.Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithBinaryVersion overrides the compile-time version string the
// version gate compares against.
func WithBinaryVersion(v string) Option {
	return func(o *options) {
		o.binaryVersion = v
	}
}

// WithLibraryVersion overrides how the runtime library's version is
// queried.
func WithLibraryVersion(fn func() string) Option {
	return func(o *options) {
		o.libraryVersion = fn
	}
}

// WithStateListener sets a listener for lifecycle state changes.
// The listener is called synchronously from the host callbacks.
func WithStateListener(l StateListener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// WithTeardownHook sets a hook invoked every time a runtime handle is
// destroyed.
func WithTeardownHook(fn func()) Option {
	return func(o *options) {
		o.teardownHook = fn
	}
}

// Host is the lifecycle state machine tying the version gate, the
// bootstrap sequencer and the tick driver together across the host's
// four callback points. One Host may drive any number of consecutive
// run segments; at most one segment is live at a time.
type Host struct {
	mu   sync.Mutex
	opts options

	logger log.Logger
	state  State

	// Restart carrier. pending is consumed exactly once by the next
	// bootstrap; restartNow ends the live task at its next iterate.
	pending        Variant
	restartPending bool
	restartNow     bool
}

// New creates a new Host in StateUninitialized.
func New(opts ...Option) *Host {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Host{
		opts:   o,
		logger: o.logger,
		state:  StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// RequestRestart asks for a teardown and re-init carrying v. When a run
// segment is live, its task is ended at the next iterate; the payload
// becomes visible to the successor segment before its boot routine runs.
func (h *Host) RequestRestart(v Variant) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = v
	h.restartPending = true
	if h.state == StateRunning {
		h.restartNow = true
	}
}

// RestartPending reports whether a restart was requested and the host
// loop should re-init after shutdown.
func (h *Host) RestartPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.restartPending
}

// Event is the host's event-delivery callback. It carries no state
// transition; it exists as an extension point for the application layer.
func (h *Host) Event(g *Globals, evt Event) {}

// Shutdown destroys the segment's runtime handle and terminates the
// state machine. It is best-effort and never fails: it tolerates a nil
// or never-populated state and a repeated call for the same segment.
func (h *Host) Shutdown(g *Globals, outcome Result) {
	if g != nil && !g.closed {
		g.closed = true
		g.l.Close()
		if h.opts.teardownHook != nil {
			h.opts.teardownHook()
		}
	}
	h.forceState(StateTerminated, "shutdown")
	h.logger.Info("shutdown", log.String("outcome", outcome.String()))
}
