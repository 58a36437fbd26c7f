package host

import (
	"fmt"

	"github.com/ember2d/ember/pkg/log"
)

// State represents the lifecycle state of the execution bridge.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateRunning
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateRunning:
		return "Running"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// StateListener is called when the bridge changes lifecycle state.
type StateListener interface {
	OnStateChange(previous, current State, reason string)
}

// transitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (h *Host) transitionTo(newState State, reason string) error {
	h.mu.Lock()
	oldState := h.state

	valid := false
	switch oldState {
	case StateUninitialized:
		valid = newState == StateInitializing
	case StateInitializing:
		valid = newState == StateRunning || newState == StateTerminated
	case StateRunning:
		valid = newState == StateTerminated
	case StateTerminated:
		// A new segment may begin only after a full teardown.
		valid = newState == StateInitializing || newState == StateTerminated
	}
	if !valid {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldState, newState)
	}

	h.state = newState
	h.mu.Unlock()

	h.notify(oldState, newState, reason)
	return nil
}

// forceState is the unconditional variant used by shutdown, which must
// never fail regardless of how far the segment got.
func (h *Host) forceState(newState State, reason string) {
	h.mu.Lock()
	oldState := h.state
	h.state = newState
	h.mu.Unlock()

	if oldState != newState {
		h.notify(oldState, newState, reason)
	}
}

func (h *Host) notify(oldState, newState State, reason string) {
	if h.opts.listener != nil {
		h.opts.listener.OnStateChange(oldState, newState, reason)
	}
	h.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
}
