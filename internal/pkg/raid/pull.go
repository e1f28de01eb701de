package raid

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ozacod/raider/internal/pkg/utils/terminal"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

// DefaultPull is the countdown length when no duration is given
const DefaultPull = 10

// ParseSeconds parses the pull duration argument
func ParseSeconds(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, rerrors.NewUsageError(
			fmt.Sprintf("invalid pull duration %q: expected whole seconds", arg),
			"raider raid pull 10")
	}
	if n <= 0 {
		return 0, rerrors.NewUsageError(
			fmt.Sprintf("pull duration must be positive, got %d", n),
			"raider raid pull 10")
	}
	return n, nil
}

// Countdown prints one line per second. With overwrite set each tick
// replaces the previous one in place.
type Countdown struct {
	Out       io.Writer
	Overwrite bool
	// Tick returns a channel that fires once per step; defaults to time.Tick(time.Second)
	Tick func() <-chan time.Time
}

// Run counts down from seconds to zero and announces the pull. It returns
// the context error when interrupted.
func (c *Countdown) Run(ctx context.Context, seconds int) error {
	tick := c.Tick
	if tick == nil {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		tick = func() <-chan time.Time { return ticker.C }
	}

	fmt.Fprintf(c.Out, "=== PULL IN %d ===\n", seconds)
	for t := seconds; t > 0; t-- {
		if c.Overwrite {
			fmt.Fprintf(c.Out, "%sPull in... %d", terminal.ClearLine, t)
		} else {
			fmt.Fprintf(c.Out, "Pull in... %d\n", t)
		}
		select {
		case <-ctx.Done():
			if c.Overwrite {
				fmt.Fprintln(c.Out)
			}
			return ctx.Err()
		case <-tick():
		}
	}
	if c.Overwrite {
		fmt.Fprint(c.Out, terminal.ClearLine)
	}
	fmt.Fprintln(c.Out, "PULL NOW!")
	return nil
}
