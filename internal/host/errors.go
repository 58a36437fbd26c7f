package host

import "errors"

// Bridge errors returned by Init. They can be checked with errors.Is.
var (
	// ErrVersionMismatch is returned when the host binary's embedded
	// version string differs from the one the runtime library reports.
	ErrVersionMismatch = errors.New("ember: runtime library version mismatch")

	// ErrInvalidTransition is returned when a callback arrives in a
	// lifecycle state that does not permit it.
	ErrInvalidTransition = errors.New("ember: invalid lifecycle transition")

	// ErrRestartCycle is returned when a restart payload contains a
	// reference cycle and cannot be carried across segments.
	ErrRestartCycle = errors.New("ember: restart value contains a cycle")
)
