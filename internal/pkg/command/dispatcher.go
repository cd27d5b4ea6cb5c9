// Package command interprets named switch commands and hosts the interactive
// console that produces them.
package command

import (
	"fmt"
	"io"

	"github.com/karyx/edge-firmware/internal/pkg/state"
	"go.uber.org/zap"
)

// Dispatcher maps (command, channel) pairs onto store mutations. Unrecognized
// commands are ignored; out-of-range channels are left to the store's own
// permissive handling.
type Dispatcher struct {
	store  *state.Store
	out    io.Writer
	logger *zap.Logger
}

func NewDispatcher(store *state.Store, out io.Writer) *Dispatcher {
	return &Dispatcher{
		store:  store,
		out:    out,
		logger: zap.L(),
	}
}

// Execute runs one command. Every dispatch is logged before execution,
// whether or not the command is recognized.
func (d *Dispatcher) Execute(cmd string, channel int) {
	d.logger.Info("executing command", zap.String("command", cmd), zap.Int("channel", channel))

	switch cmd {
	case "on":
		d.store.Set(channel, true)
	case "off":
		d.store.Set(channel, false)
	case "toggle":
		d.store.Toggle(channel)
	case "status":
		d.PrintStatus()
	case "all_on":
		for i := 0; i < d.store.NumChannels(); i++ {
			d.store.Set(i, true)
		}
	case "all_off":
		for i := 0; i < d.store.NumChannels(); i++ {
			d.store.Set(i, false)
		}
	}
}

// PrintStatus writes a human-readable snapshot of every channel.
func (d *Dispatcher) PrintStatus() {
	for i, ch := range d.store.Snapshot() {
		onOff := "OFF"
		if ch.On {
			onOff = "ON"
		}
		fmt.Fprintf(d.out, "CH%d: [%s] (%d toggles)\n", i, onOff, ch.ToggleCount)
	}
}
