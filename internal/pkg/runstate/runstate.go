// Package runstate carries the cooperative shutdown flag shared by every
// long-running loop in the firmware.
package runstate

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Flag starts in the running state and is stopped exactly once, either by a
// shutdown signal or by an interactive quit command. It is never reset.
type Flag struct {
	stopped atomic.Bool
}

func NewFlag() *Flag {
	return &Flag{}
}

func (f *Flag) Running() bool {
	return !f.stopped.Load()
}

func (f *Flag) Stop() {
	f.stopped.Store(true)
}

// NotifyOnSignal stops the flag when SIGINT or SIGTERM arrives. The handler
// does nothing else; a loop blocked on a read only notices the flag once the
// read returns.
func NotifyOnSignal(flag *Flag, logger *zap.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go watch(ch, flag, logger)
}

func watch(ch <-chan os.Signal, flag *Flag, logger *zap.Logger) {
	s := <-ch
	logger.Info("received shutdown signal", zap.String("signal", s.String()))
	flag.Stop()
}

// Wait sleeps for up to d, waking at one-second boundaries to recheck the
// flag, so shutdown latency is bounded by a second. It returns false as soon
// as the flag has been stopped.
func Wait(flag *Flag, d time.Duration) bool {
	for d > 0 {
		if !flag.Running() {
			return false
		}
		step := time.Second
		if d < step {
			step = d
		}
		time.Sleep(step)
		d -= step
	}
	return flag.Running()
}
