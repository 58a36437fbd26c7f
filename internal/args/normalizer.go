// Package args rewrites the raw process argument vector before the host
// publishes it to the script layer.
//
// The host never branches on platform identity itself; everything
// platform specific (OS-injected launch parameters, bundled game
// discovery) lives behind the Normalizer interface.
package args

import "strings"

// OSInjectedPrefix marks arguments injected by the OS launcher rather
// than the user. On macOS the process serial number is passed this way.
const OSInjectedPrefix = "-psn_"

// FusedFlag is inserted after a discovered bundle path so the script
// layer boots in fused mode.
const FusedFlag = "--fused"

// Normalizer produces a clean argument vector from raw process
// arguments plus platform-specific launch hints. Index 0 is the program
// path and is never rewritten. A returned error is fatal to
// initialization.
type Normalizer interface {
	Normalize(argv []string) ([]string, error)
}

// BundleLocator reports a packaged game resource co-located with the
// host binary. ok is false when no bundle is present. fused requests
// the fused-mode marker flag after the bundle path.
type BundleLocator func() (path string, fused bool, ok bool)

// Platform is the default Normalizer. It strips OS-injected arguments
// and, when a bundle locator is configured, splices the discovered game
// path in as the first user argument.
type Platform struct {
	// StripPrefix removes matching arguments (index 0 excluded).
	StripPrefix string

	// Locate discovers a co-located bundle. Nil disables discovery.
	Locate BundleLocator
}

// NewPlatform returns a Platform normalizer with the default
// OS-injected prefix and no bundle discovery.
func NewPlatform() *Platform {
	return &Platform{StripPrefix: OSInjectedPrefix}
}

// Normalize rewrites argv. The input slice is not mutated.
func (p *Platform) Normalize(argv []string) ([]string, error) {
	out := make([]string, 0, len(argv)+2)
	for i, a := range argv {
		if i > 0 && p.StripPrefix != "" && strings.HasPrefix(a, p.StripPrefix) {
			continue
		}
		out = append(out, a)
	}

	if p.Locate == nil {
		return out, nil
	}
	path, fused, ok := p.Locate()
	if !ok || path == "" {
		return out, nil
	}

	// The bundle path becomes the game path argument, ahead of any
	// user-supplied arguments.
	spliced := make([]string, 0, len(out)+2)
	if len(out) > 0 {
		spliced = append(spliced, out[0])
	}
	spliced = append(spliced, path)
	if fused {
		spliced = append(spliced, FusedFlag)
	}
	if len(out) > 1 {
		spliced = append(spliced, out[1:]...)
	}
	return spliced, nil
}
