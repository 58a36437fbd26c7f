package host

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/ember2d/ember/pkg/log"
)

// Iterate is the host's per-tick callback. It resumes the cooperative
// task once with zero arguments and interprets its completion signal.
// The driver itself never blocks; the task is expected to yield
// voluntarily at each frame boundary.
func (h *Host) Iterate(g *Globals) Result {
	h.mu.Lock()
	if h.restartNow {
		h.restartNow = false
		h.mu.Unlock()
		return Success
	}
	h.mu.Unlock()

	st, err, values := g.l.Resume(g.co, g.fn)
	switch st {
	case lua.ResumeYield:
		// Drop any transient values the task left behind since the
		// watermark recorded at bootstrap.
		g.l.SetTop(g.stackpos)
		return Continue
	case lua.ResumeOK:
		return h.completed(values)
	default:
		// Unhandled failure inside the task. Not retried; surfaced
		// only as the exit disposition.
		h.logger.Error("task failed", log.Err(err))
		return Failure
	}
}

// completed inspects the task's return values for the restart protocol
// and the exit disposition.
func (h *Host) completed(values []lua.LValue) Result {
	if len(values) > 0 && values[0] == lua.LString("restart") {
		var payload lua.LValue = lua.LNil
		if len(values) > 1 {
			payload = values[1]
		}
		v, err := VariantFromLua(payload)
		if err != nil {
			h.logger.Warn("restart value dropped", log.Err(err))
			v = NilVariant()
		}
		h.mu.Lock()
		h.pending = v
		h.restartPending = true
		h.mu.Unlock()
		return Success
	}

	if len(values) > 0 {
		if code, ok := values[0].(lua.LNumber); ok && code != 0 {
			return Failure
		}
	}
	return Success
}
