package serialecho

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/atomic"
)

// Flag is the process-wide cancellation flag. It is set once from the
// signal goroutine and polled by the loop; it is never reset.
type Flag struct {
	set atomic.Bool
}

// Set raises the flag.
func (f *Flag) Set() {
	f.set.Store(true)
}

// IsSet reports whether cancellation was requested.
func (f *Flag) IsSet() bool {
	return f.set.Load()
}

var handlerInstalled atomic.Bool

// NotifyInterrupt sets f when the process receives SIGINT or SIGTERM.
// Only one handler may be installed at a time. Signals that arrive after the
// first one are absorbed until stop is called, so shutdown is never cut short.
func NotifyInterrupt(f *Flag) (stop func(), err error) {
	if !handlerInstalled.CompareAndSwap(false, true) {
		return nil, ErrHandlerInstalled
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigChan:
				f.Set()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			handlerInstalled.Store(false)
		})
	}, nil
}
