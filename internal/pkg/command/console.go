package command

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/karyx/edge-firmware/internal/pkg/runstate"
)

const helpText = "Commands: on <ch>, off <ch>, toggle <ch>, status, all_on, all_off, help, quit"

// Console reads "<command> [channel]" lines and dispatches them. After every
// line it invokes afterCmd, which the switch firmware uses to fire a status
// report when one is due. Run returns when the input reaches EOF, a quit
// command arrives, or the run flag is stopped.
type Console struct {
	dispatcher *Dispatcher
	flag       *runstate.Flag
	in         io.Reader
	out        io.Writer
	afterCmd   func()
}

func NewConsole(dispatcher *Dispatcher, flag *runstate.Flag, in io.Reader, out io.Writer, afterCmd func()) *Console {
	return &Console{
		dispatcher: dispatcher,
		flag:       flag,
		in:         in,
		out:        out,
		afterCmd:   afterCmd,
	}
}

func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)
	for c.flag.Running() {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			// EOF or read error; shutdown proceeds via the flag.
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, channel := parseLine(line)
		switch cmd {
		case "quit", "exit":
			c.flag.Stop()
		case "help":
			fmt.Fprintln(c.out, helpText)
		default:
			c.dispatcher.Execute(cmd, channel)
		}

		if c.afterCmd != nil {
			c.afterCmd()
		}
	}
	return scanner.Err()
}

// parseLine splits a console line into command and channel. A missing or
// malformed channel argument defaults to 0.
func parseLine(line string) (string, int) {
	fields := strings.Fields(line)
	channel := 0
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			channel = n
		}
	}
	return fields[0], channel
}
