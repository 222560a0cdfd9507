//go:build !windows

package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize calls notify on every SIGWINCH until stop is called.
func watchResize(notify func()) (stop func()) {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-sig:
				notify()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}
