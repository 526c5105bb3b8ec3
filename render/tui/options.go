// Package tui implements the full-screen dashboard renderer: a title
// bar, a scrollable task pane with one row per visible task, and a
// resizable message pane fed by the tree's message ring.
package tui

import "time"

// WindowSize overrides the terminal size bubbletea would otherwise
// learn from its first tea.WindowSizeMsg.
type WindowSize struct {
	Width, Height int
}

// Options configures Render. The zero value is valid.
type Options struct {
	// Title is shown in the header bar; "" uses DefaultTitle.
	Title string
	// RefreshInterval paces the redraw tick; <= 0 uses DefaultRefreshInterval.
	RefreshInterval time.Duration
	// RecomputeColumnWidthEveryNthFrame bounds how often the task-name
	// column width is recalculated; <= 0 uses columnRecomputeEvery.
	RecomputeColumnWidthEveryNthFrame int
	// WindowSize overrides the size bubbletea auto-detects, for hosts
	// that never deliver a tea.WindowSizeMsg (e.g. piped output in tests).
	WindowSize *WindowSize
	// StopIfEmptyProgress quits the dashboard once a tick observes no
	// live tasks, instead of sitting on an empty screen forever.
	StopIfEmptyProgress bool
	// Interruptible gates whether q/ctrl-c quit the program; defaults to
	// true (nil and non-nil-true both interruptible).
	Interruptible *bool
	// Throughput enables the throughput column in the task pane.
	Throughput bool
	// InitialScrollSpeed sets how many lines j/k scroll the message pane
	// per keypress before the user changes it with a digit key; <= 0
	// uses DefaultScrollSpeed.
	InitialScrollSpeed int
	// InitialMessagePaneFraction is the message pane's starting share of
	// the screen height, in [0.1, 0.9]; 0 uses DefaultMessagePaneFraction.
	InitialMessagePaneFraction float64
	// MessageHistory bounds how many scrolled messages the pane retains;
	// <= 0 uses DefaultMessageHistory.
	MessageHistory int
}

// DefaultTitle is used when Options.Title is unset.
const DefaultTitle = "prodash"

// DefaultRefreshInterval matches render/line's DefaultFPS cadence.
const DefaultRefreshInterval = 100 * time.Millisecond

// DefaultScrollSpeed is how many lines a single j/k keypress scrolls.
const DefaultScrollSpeed = 1

// DefaultMessagePaneFraction is the message pane's starting height share.
const DefaultMessagePaneFraction = 0.3

// DefaultMessageHistory bounds the local, renderer-side message buffer
// independent of the tree's own ring capacity.
const DefaultMessageHistory = 500

func (o Options) refreshInterval() time.Duration {
	if o.RefreshInterval > 0 {
		return o.RefreshInterval
	}
	return DefaultRefreshInterval
}

func (o Options) scrollSpeed() int {
	if o.InitialScrollSpeed > 0 {
		return o.InitialScrollSpeed
	}
	return DefaultScrollSpeed
}

func (o Options) messagePaneFraction() float64 {
	if o.InitialMessagePaneFraction >= 0.1 && o.InitialMessagePaneFraction <= 0.9 {
		return o.InitialMessagePaneFraction
	}
	return DefaultMessagePaneFraction
}

func (o Options) messageHistory() int {
	if o.MessageHistory > 0 {
		return o.MessageHistory
	}
	return DefaultMessageHistory
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return DefaultTitle
}

func (o Options) columnRecomputeEvery() int {
	if o.RecomputeColumnWidthEveryNthFrame > 0 {
		return o.RecomputeColumnWidthEveryNthFrame
	}
	return columnRecomputeEvery
}

// interruptible reports whether q/ctrl-c should quit the program.
func (o Options) interruptible() bool {
	return o.Interruptible == nil || *o.Interruptible
}
