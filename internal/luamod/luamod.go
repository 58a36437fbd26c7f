// Package luamod implements the native Lua modules the host installs
// into the interpreter: the root "ember" module, the "ember.boot"
// cooperative main, and the "ember.platform" setup module.
package luamod

import (
	_ "embed"

	lua "github.com/yuin/gopher-lua"

	"github.com/ember2d/ember/internal/version"
)

//go:embed boot.lua
var bootSource string

// Module names as seen from Lua.
const (
	RootModule     = "ember"
	BootModule     = "ember.boot"
	PlatformModule = "ember.platform"
)

// BootSentinel is published at arg[-1] to mark a boot from the embedded
// entry point rather than an on-disk script.
const BootSentinel = "embedded boot.lua"

// Loader builds the root ember module table. Requiring it also preloads
// ember.boot so the boot routine can be required afterwards without any
// further host involvement.
func Loader(L *lua.LState) int {
	mod := L.NewTable()
	mod.RawSetString("_version", lua.LString(version.Library()))
	mod.RawSetString("_version_codename", lua.LString(version.Codename))
	mod.RawSetString("quit", L.NewFunction(quitFunc(mod)))

	L.PreloadModule(BootModule, BootLoader)

	L.Push(mod)
	return 1
}

// quitFunc returns the native ember.quit implementation. It only records
// the request on the module table; the boot loop inspects it at the next
// frame boundary.
//
//	ember.quit()                 -- quit with status 0
//	ember.quit(code)             -- quit with a numeric status
//	ember.quit("restart", value) -- tear down and boot again, carrying value
func quitFunc(mod *lua.LTable) lua.LGFunction {
	return func(L *lua.LState) int {
		q := L.NewTable()
		if L.Get(1) == lua.LString("restart") {
			q.RawSetString("restart", lua.LTrue)
			q.RawSetString("value", L.Get(2))
		} else {
			q.RawSetString("code", L.Get(1))
		}
		mod.RawSetString("_quit", q)
		return 0
	}
}

// BootLoader compiles the embedded boot script and returns the boot
// function it evaluates to. The returned function is the application's
// cooperative main: the host wraps it in a coroutine and resumes it once
// per tick.
func BootLoader(L *lua.LState) int {
	fn, err := L.LoadString(bootSource)
	if err != nil {
		L.RaiseError("ember.boot: %v", err)
		return 0
	}
	L.Push(fn)
	L.Call(0, 1)
	return 1
}

// PlatformLoader is the platform-setup module. It must be required
// before any module that can pull in external library code; argument
// normalization depends on that ordering too. The module itself is a
// hook point and currently carries no state.
func PlatformLoader(L *lua.LState) int {
	L.Push(L.NewTable())
	return 1
}
