package line

import (
	"os"
	"time"
)

// LevelRange restricts rendering to a span of tree depths, inclusive.
type LevelRange struct {
	Min, Max int
}

// Dimensions overrides auto-detected terminal size.
type Dimensions struct {
	Width, Height int
}

// Options configures Render. The zero value is valid and matches the
// documented defaults.
type Options struct {
	// OutputIsTerminal forces terminal detection instead of
	// auto-detecting via the Terminal's IsTerminal().
	OutputIsTerminal *bool
	// Colored forces color on/off instead of following NO_COLOR/CLICOLOR.
	Colored *bool
	// Timestamp prefixes each scrolled-up message with its time.
	Timestamp bool
	// LevelFilter restricts which tree depths are drawn; zero value
	// (Min==Max==0) means "no filter, show everything".
	LevelFilter LevelRange
	// InitialDelay skips rendering entirely if the tree empties out
	// (KeepRunningIfProgressIsEmpty aside) before this elapses.
	InitialDelay time.Duration
	// FramesPerSecond paces the redraw ticker; <= 0 uses DefaultFPS.
	FramesPerSecond float64
	// Throughput enables the throughput column.
	Throughput bool
	// HideCursor hides the cursor for the renderer's lifetime.
	HideCursor bool
	// KeepRunningIfProgressIsEmpty keeps ticking even when the tree has
	// no visible tasks, instead of treating that as "nothing to draw".
	KeepRunningIfProgressIsEmpty bool
	// TerminalDimensions overrides the auto-detected size.
	TerminalDimensions *Dimensions
	// DoneMessage, if set, is printed in place of the progress region
	// once rendering stops instead of simply clearing it.
	DoneMessage string
}

// DefaultFPS is used when Options.FramesPerSecond is unset.
const DefaultFPS = 10.0

func (o Options) fps() float64 {
	if o.FramesPerSecond > 0 {
		return o.FramesPerSecond
	}
	return DefaultFPS
}

// colored resolves the effective color decision for these options
// against the terminal's detection and the clicolors env convention
// (NO_COLOR, CLICOLOR, CLICOLOR_FORCE).
func (o Options) colored(t Terminal) bool {
	if o.Colored != nil {
		return *o.Colored
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") != "" && os.Getenv("CLICOLOR_FORCE") != "0" {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	return o.isTerminal(t)
}

func (o Options) isTerminal(t Terminal) bool {
	if o.OutputIsTerminal != nil {
		return *o.OutputIsTerminal
	}
	return t.IsTerminal()
}

func (o Options) dimensions(t Terminal) (width, height int) {
	if o.TerminalDimensions != nil {
		return o.TerminalDimensions.Width, o.TerminalDimensions.Height
	}
	if w, h, ok := t.Size(); ok {
		return w, h
	}
	return 80, 24
}

func (o Options) levelVisible(depth int) bool {
	if o.LevelFilter.Min == 0 && o.LevelFilter.Max == 0 {
		return true
	}
	return depth >= o.LevelFilter.Min && depth <= o.LevelFilter.Max
}
