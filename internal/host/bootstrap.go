package host

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ember2d/ember/internal/luamod"
	"github.com/ember2d/ember/internal/version"
	"github.com/ember2d/ember/pkg/log"
)

// Keep this message in sync with the usage print in boot.lua if one is
// ever added there.
const usageText = `Ember is a framework you can use to make 2D games in Lua
https://github.com/ember2d/ember

usage:
    ember --version                  prints Ember version and quits
    ember --help                     prints this message and quits
    ember path/to/gamedir            runs the game from the given directory which contains a main.lua file
    ember path/to/packagedgame.ember runs the packaged game from the provided .ember archive
    ember path/to/file.lua           runs the game from the given .lua file
`

// Init is the host's init callback. It runs the version gate and the
// one-shot bootstrap sequence, returning the per-run state the remaining
// callbacks operate on.
//
// rawArgs follows the argv convention: index 0 is the program path. The
// result is Continue on success, Success for --version/--help (no
// runtime handle is created), Failure otherwise.
func (h *Host) Init(rawArgs []string) (*Globals, Result, error) {
	if err := h.transitionTo(StateInitializing, "init"); err != nil {
		return nil, Failure, err
	}

	// Binary/library skew is fatal before any other work.
	bin, lib := h.opts.binaryVersion, h.opts.libraryVersion()
	if bin != lib {
		h.forceState(StateTerminated, "version mismatch")
		h.logger.Error("version mismatch detected",
			log.String("binary", bin),
			log.String("library", lib),
		)
		return nil, Failure, fmt.Errorf("%w: binary is %s, library is %s", ErrVersionMismatch, bin, lib)
	}

	if len(rawArgs) > 1 {
		switch rawArgs[1] {
		case "--version":
			// Attach a console first so the print is visible on
			// platforms without one.
			if err := h.opts.console.Attach(); err != nil {
				h.logger.Warn("console attach failed", log.Err(err))
			}
			fmt.Fprintf(h.opts.stdout, "ember %s (%s)\n", lib, version.Codename)
			h.forceState(StateTerminated, "--version")
			return nil, Success, nil
		case "--help":
			fmt.Fprint(h.opts.stdout, usageText)
			h.forceState(StateTerminated, "--help")
			return nil, Success, nil
		}
	}

	g, err := h.bootstrap(rawArgs)
	if err != nil {
		h.forceState(StateTerminated, "bootstrap failed")
		h.logger.Error("bootstrap failed", log.Err(err))
		return nil, Failure, err
	}

	if err := h.transitionTo(StateRunning, "bootstrap complete"); err != nil {
		h.Shutdown(g, Failure)
		return nil, Failure, err
	}
	return g, Continue, nil
}

// bootstrap performs the ordered one-shot setup: interpreter creation,
// native module installation, argument publication, root module load,
// restart payload handoff, and wrapping the boot routine as a
// not-yet-started coroutine. On any failure no partial runtime handle
// remains reachable.
func (h *Host) bootstrap(rawArgs []string) (g *Globals, err error) {
	L := lua.NewState()
	defer func() {
		if err != nil {
			L.Close()
			if h.opts.teardownHook != nil {
				h.opts.teardownHook()
			}
		}
	}()

	// Platform setup must run before any module that can transitively
	// load external library code, and before argument normalization,
	// because normalization may trigger bundle-resolution code.
	L.PreloadModule(luamod.PlatformModule, luamod.PlatformLoader)
	if _, err = doRequire(L, luamod.PlatformModule, 0); err != nil {
		return nil, fmt.Errorf("load %s: %w", luamod.PlatformModule, err)
	}

	argv, err := h.opts.normalizer.Normalize(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("normalize arguments: %w", err)
	}

	L.PreloadModule(luamod.RootModule, luamod.Loader)

	publishArgs(L, argv)

	rootv, err := doRequire(L, luamod.RootModule, 1)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", luamod.RootModule, err)
	}
	root, ok := rootv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("module %s did not return a table", luamod.RootModule)
	}

	// Running as a standalone binary, not the library build.
	root.RawSetString("_exe", lua.LTrue)

	// Publish the restart payload, then drop the carrier so no stale
	// reference survives into the segment.
	h.mu.Lock()
	pending := h.pending
	h.pending = Variant{}
	h.restartPending = false
	h.restartNow = false
	h.mu.Unlock()
	root.RawSetString("restart", pending.ToLua(L))

	bootv, err := doRequire(L, luamod.BootModule, 1)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", luamod.BootModule, err)
	}
	fn, ok := bootv.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("module %s did not return a function", luamod.BootModule)
	}

	co, _ := L.NewThread()

	return &Globals{l: L, co: co, fn: fn, stackpos: L.GetTop()}, nil
}

// publishArgs builds the global arg table. Slot -2 holds the program
// path, slot -1 the embedded-boot sentinel, slots 1..N the user
// arguments in original order. The table is never mutated afterwards.
func publishArgs(L *lua.LState, argv []string) {
	tbl := L.NewTable()
	if len(argv) > 0 {
		tbl.RawSetInt(-2, lua.LString(argv[0]))
	}
	tbl.RawSetInt(-1, lua.LString(luamod.BootSentinel))
	for i := 1; i < len(argv); i++ {
		tbl.RawSetInt(i, lua.LString(argv[i]))
	}
	L.SetGlobal("arg", tbl)
}

// doRequire calls the interpreter's require with protection and hands
// back the module value when nret is 1.
func doRequire(L *lua.LState, name string, nret int) (lua.LValue, error) {
	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("require"),
		NRet:    nret,
		Protect: true,
	}, lua.LString(name))
	if err != nil {
		return lua.LNil, err
	}
	if nret == 0 {
		return lua.LNil, nil
	}
	v := L.Get(-1)
	L.Pop(1)
	return v, nil
}
