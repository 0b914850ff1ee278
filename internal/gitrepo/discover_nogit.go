//go:build nogit

package gitrepo

// Enabled reports whether this build can discover repositories
const Enabled = false

// New returns the disabled Discoverer in nogit builds
func New() Discoverer {
	return disabled{}
}
