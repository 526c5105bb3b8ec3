package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobanhawi/prodash/key"
	prodash "github.com/mobanhawi/prodash/progress"
	"github.com/mobanhawi/prodash/unit"
)

// tickMsg drives the periodic resync against the tree, the TUI
// equivalent of render/line's ticker.
type tickMsg time.Time

// taskRow is the per-task widget state kept across frames so a task's
// progress bar and elapsed-time stopwatch animate smoothly instead of
// resetting every tick.
type taskRow struct {
	bar        progress.Model
	timer      stopwatch.Model
	throughput *unit.Throughput
	firstSeen  time.Time
}

func newTaskRow() *taskRow {
	return &taskRow{
		bar:        progress.New(progress.WithoutPercentage()),
		timer:      stopwatch.NewWithInterval(time.Second),
		throughput: unit.NewThroughput(),
	}
}

// Model is the bubbletea application model for the dashboard renderer.
type Model struct {
	root *prodash.Root
	opts Options

	start  time.Time
	width  int
	height int

	snapshot []prodash.Entry
	rows     map[key.Key]*taskRow

	messages       []prodash.Message
	lastMessageSeq uint64

	scrollOffset int
	scrollSpeed  int
	msgPaneFrac  float64

	showHelp bool
	quitting bool

	// recomputed every columnRecomputeEvery frames so the name column
	// doesn't jitter by a rune or two as labels change length transiently.
	frameCount       int
	cachedNameWidth  int
	cachedNameWidthW int // the frameCount at which this cache was last computed
}

// columnRecomputeEvery bounds how often the name column width is
// recalculated, trading a frame or two of staleness for a layout that
// never visibly jitters as labels change length transiently.
const columnRecomputeEvery = 5

// New constructs a fresh Model observing root.
func New(root *prodash.Root, opts Options) Model {
	m := Model{
		root:        root,
		opts:        opts,
		start:       time.Now(),
		rows:        make(map[key.Key]*taskRow),
		scrollSpeed: opts.scrollSpeed(),
		msgPaneFrac: opts.messagePaneFraction(),
	}
	if opts.WindowSize != nil {
		m.width, m.height = opts.WindowSize.Width, opts.WindowSize.Height
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick(m.opts.refreshInterval())
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// rowFor returns the taskRow for k, creating (and starting its
// stopwatch) if this is the first time k has been seen.
func (m *Model) rowFor(k key.Key, now time.Time) (*taskRow, tea.Cmd) {
	if r, ok := m.rows[k]; ok {
		return r, nil
	}
	r := newTaskRow()
	r.firstSeen = now
	m.rows[k] = r
	return r, r.timer.Start()
}

// prune drops row widgets for tasks no longer present in the latest
// snapshot, stopping their stopwatches first.
func (m *Model) prune(live map[key.Key]struct{}) []tea.Cmd {
	var cmds []tea.Cmd
	for k, r := range m.rows {
		if _, ok := live[k]; ok {
			continue
		}
		cmds = append(cmds, r.timer.Stop())
		delete(m.rows, k)
	}
	return cmds
}
