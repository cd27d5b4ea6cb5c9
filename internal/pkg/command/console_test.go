package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/karyx/edge-firmware/internal/pkg/runstate"
	"github.com/karyx/edge-firmware/internal/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, input string, afterCmd func()) (*Console, *state.Store, *runstate.Flag, *bytes.Buffer) {
	t.Helper()
	store := state.NewStore(2)
	flag := runstate.NewFlag()
	out := &bytes.Buffer{}
	d := NewDispatcher(store, out)
	return NewConsole(d, flag, strings.NewReader(input), out, afterCmd), store, flag, out
}

func TestConsole_DispatchesParsedLines(t *testing.T) {
	console, store, _, _ := newTestConsole(t, "on 0\ntoggle 1\n", nil)

	require.NoError(t, console.Run())

	assert.True(t, store.Get(0))
	assert.True(t, store.Get(1))
}

func TestConsole_QuitStopsFlag(t *testing.T) {
	console, _, flag, _ := newTestConsole(t, "quit\nthis line is never read\n", nil)

	require.NoError(t, console.Run())
	assert.False(t, flag.Running())
}

func TestConsole_ExitAlias(t *testing.T) {
	console, _, flag, _ := newTestConsole(t, "exit\n", nil)

	require.NoError(t, console.Run())
	assert.False(t, flag.Running())
}

func TestConsole_HelpAndBlankLines(t *testing.T) {
	console, store, flag, out := newTestConsole(t, "\n   \nhelp\n", nil)

	require.NoError(t, console.Run())

	assert.Contains(t, out.String(), "Commands: on <ch>")
	assert.True(t, flag.Running(), "help does not shut down")
	for _, ch := range store.Snapshot() {
		assert.Zero(t, ch.ToggleCount)
	}
}

func TestConsole_MalformedChannelDefaultsToZero(t *testing.T) {
	console, store, _, _ := newTestConsole(t, "on abc\n", nil)

	require.NoError(t, console.Run())
	assert.True(t, store.Get(0))
}

func TestConsole_AfterCmdHookRunsPerLine(t *testing.T) {
	calls := 0
	console, _, _, _ := newTestConsole(t, "on 0\nstatus\nquit\n", func() { calls++ })

	require.NoError(t, console.Run())
	assert.Equal(t, 3, calls, "report-if-due check runs after every command, quit included")
}

func TestConsole_ReturnsOnEOF(t *testing.T) {
	console, _, flag, _ := newTestConsole(t, "", nil)

	require.NoError(t, console.Run())
	assert.True(t, flag.Running(), "EOF alone does not stop the flag; the caller does")
}
