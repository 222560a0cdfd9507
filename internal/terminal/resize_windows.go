//go:build windows

package terminal

// watchResize is a no-op; the console does not deliver SIGWINCH.
func watchResize(func()) (stop func()) {
	return func() {}
}
