// Package version holds the version identity of the ember runtime.
//
// The host binary embeds Version at compile time; the runtime library
// reports its own version through Library(). The two must match exactly
// (including build metadata) before an interpreter may be created.
package version

// Version is the version string compiled into the host binary.
const Version = "0.1.0"

// Codename is the release codename printed alongside the version.
const Codename = "Campfire"

// Library returns the version string reported by the linked runtime
// library. In a statically linked build this is always Version; a host
// loading the runtime dynamically would see the loaded library's value
// here instead.
func Library() string {
	return Version
}
