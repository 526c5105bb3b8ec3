package line

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/mobanhawi/prodash/key"
	"github.com/mobanhawi/prodash/progress"
	"github.com/mobanhawi/prodash/unit"
)

// dimensionProbeRate caps how often frame() re-queries the terminal's
// size, independent of FramesPerSecond: a resize query is a syscall,
// and high-FPS renders shouldn't pay for one every tick when the
// terminal is almost never actually resized mid-render.
const dimensionProbeRate = 4 // Hz

type shutdownMode int

const (
	shutdownFinal shutdownMode = iota
	shutdownDisconnect
)

// Handle controls a running line renderer.
type Handle struct {
	cancel chan shutdownMode
	done   chan struct{}
}

// Stop requests shutdown, waits for one final frame to render, then
// clears the region (or prints DoneMessage) and restores the cursor.
func (h *Handle) Stop() {
	select {
	case h.cancel <- shutdownFinal:
	default:
	}
	<-h.done
}

// Disconnect requests shutdown but skips the final render and does not
// wait for the renderer goroutine to exit.
func (h *Handle) Disconnect() {
	select {
	case h.cancel <- shutdownDisconnect:
	default:
	}
}

// Forget drops the handle without signaling shutdown at all: the
// renderer goroutine keeps ticking forever, detached from its caller.
func (h *Handle) Forget() {}

// Render starts a ticker that redraws a bounded view of root's tree
// in place, starting at the terminal's current cursor position, until
// the returned Handle is stopped. It never blocks the caller beyond
// the initial terminal probe.
func Render(root *progress.Root, opts Options) (*Handle, error) {
	term := NewStdTerminal()
	return render(root, opts, term)
}

// render is the Terminal-injectable core of Render, split out so tests
// can drive it against a fake Terminal.
func render(root *progress.Root, opts Options, term Terminal) (*Handle, error) {
	h := &Handle{cancel: make(chan shutdownMode, 1), done: make(chan struct{})}

	r := &renderer{
		root:       root,
		opts:       opts,
		term:       term,
		throughput: make(map[key.Key]*unit.Throughput),
		start:      time.Now(),
		dimLimiter: rate.NewLimiter(rate.Limit(dimensionProbeRate), 1),
	}

	go r.loop(h)
	return h, nil
}

type renderer struct {
	root       *progress.Root
	opts       Options
	term       Terminal
	throughput map[key.Key]*unit.Throughput
	lastDrawn  int
	lastSeq    uint64
	start      time.Time
	snapshot   []progress.Entry
	msgBuf     []progress.Message

	dimLimiter   *rate.Limiter
	cachedWidth  int
	cachedHeight int
}

func (r *renderer) loop(h *Handle) {
	defer close(h.done)

	interval := time.Duration(float64(time.Second) / r.opts.fps())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if r.opts.HideCursor {
		_ = r.term.HideCursor()
	}

	skippedUntilDeadline := r.opts.InitialDelay > 0
	deadline := r.start.Add(r.opts.InitialDelay)

	for {
		select {
		case mode := <-h.cancel:
			if mode == shutdownFinal {
				r.frame()
				r.finish()
			}
			if r.opts.HideCursor {
				_ = r.term.ShowCursor()
			}
			return
		case <-ticker.C:
			if skippedUntilDeadline {
				if time.Now().Before(deadline) {
					continue
				}
				skippedUntilDeadline = false
			}
			r.frame()
		}
	}
}

// finish prints DoneMessage in place of the progress region, or clears
// it if unset.
func (r *renderer) finish() {
	r.eraseDrawnRegion()
	if r.opts.DoneMessage != "" {
		fmt.Fprintln(r.term, r.opts.DoneMessage)
	}
}

func (r *renderer) eraseDrawnRegion() {
	if r.lastDrawn == 0 {
		return
	}
	_ = r.term.MoveCursorUp(r.lastDrawn)
	for i := 0; i < r.lastDrawn; i++ {
		_ = r.term.EraseLineToEnd()
		fmt.Fprintln(r.term)
	}
	_ = r.term.MoveCursorUp(r.lastDrawn)
}

// frame renders exactly one tick: scroll new messages above the region,
// redraw the region in place.
func (r *renderer) frame() {
	r.snapshot = r.root.SortedSnapshot(r.snapshot)
	r.msgBuf, r.lastSeq = r.root.CopyNewMessages(r.msgBuf, r.lastSeq)

	width, height := r.dimensions()
	colored := r.opts.colored(r.term)

	r.scrollMessages(width, colored)

	rows := r.visibleRows()
	if len(rows) == 0 && !r.opts.KeepRunningIfProgressIsEmpty {
		r.eraseDrawnRegion()
		r.lastDrawn = 0
		return
	}

	lines := r.layout(rows, width, height, colored)

	r.eraseDrawnRegion()
	for _, l := range lines {
		fmt.Fprintln(r.term, l)
	}
	r.lastDrawn = len(lines)
}

// dimensions returns the terminal size, re-probing at most
// dimensionProbeRate times per second and returning the cached value
// otherwise. An explicit Options.TerminalDimensions always bypasses
// the limiter since it involves no syscall.
func (r *renderer) dimensions() (width, height int) {
	if r.opts.TerminalDimensions != nil {
		return r.opts.dimensions(r.term)
	}
	first := r.cachedWidth == 0
	if first || r.dimLimiter.Allow() {
		r.cachedWidth, r.cachedHeight = r.opts.dimensions(r.term)
		if first {
			// consume the limiter's initial burst token so the very
			// next probe still has to wait its turn
			r.dimLimiter.Allow()
		}
	}
	return r.cachedWidth, r.cachedHeight
}

func (r *renderer) scrollMessages(width int, colored bool) {
	if len(r.msgBuf) == 0 {
		return
	}
	r.eraseDrawnRegion()
	for _, m := range r.msgBuf {
		fmt.Fprintln(r.term, formatMessage(m, r.opts.Timestamp, width, colored))
	}
	// The old region was just consumed by the erase above and the
	// cursor now sits right after the freshly printed messages, not
	// after a now-stale L-line region: the next redraw starts fresh.
	r.lastDrawn = 0
}

func formatMessage(m progress.Message, timestamp bool, width int, colored bool) string {
	prefix := ""
	if timestamp {
		prefix = m.Time.Format("15:04:05") + " "
	}
	line := prefix + "[" + m.Origin + "] " + m.Content
	line = truncate(line, width)
	if !colored {
		return line
	}
	style := lipgloss.NewStyle()
	switch m.Level {
	case progress.Failure:
		style = style.Foreground(lipgloss.Color("9"))
	case progress.Success:
		style = style.Foreground(lipgloss.Color("10"))
	default:
		style = style.Foreground(lipgloss.Color("7"))
	}
	return style.Render(line)
}

func (r *renderer) visibleRows() []progress.Entry {
	rows := make([]progress.Entry, 0, len(r.snapshot))
	for _, e := range r.snapshot {
		if r.opts.levelVisible(e.Key.Depth()) {
			rows = append(rows, e)
		}
	}
	return rows
}

// layout builds the final lines for one frame: a column-aligned row per
// visible task, bounded to the terminal height with a "(+n more)"
// marker for anything truncated.
func (r *renderer) layout(rows []progress.Entry, width, height int, colored bool) []string {
	now := time.Now()
	for _, e := range rows {
		th := r.throughput[e.Key]
		if th == nil {
			th = unit.NewThroughput()
			r.throughput[e.Key] = th
		}
		th.Sample(now, e.Value.Step)
	}

	nameWidth := 0
	for _, e := range rows {
		if n := utf8.RuneCountInString(e.Value.Name); n > nameWidth {
			nameWidth = n
		}
	}
	if nameWidth > width/2 {
		nameWidth = width / 2
	}

	maxRows := height
	if maxRows < 1 {
		maxRows = 1
	}
	truncated := 0
	visible := rows
	if len(rows) > maxRows {
		truncated = len(rows) - (maxRows - 1)
		visible = rows[:maxRows-1]
	}

	lines := make([]string, 0, len(visible)+1)
	for i, e := range visible {
		var prevKey key.Key
		if i > 0 {
			prevKey = visible[i-1].Key
		}
		adj := key.Adjacencies(prevKey, e.Key, e.Key.Depth())
		lines = append(lines, r.renderRow(e, adj, nameWidth, width, colored))
	}
	if truncated > 0 {
		lines = append(lines, truncate("  (+"+strconv.Itoa(truncated)+" more)", width))
	}
	return lines
}

func (r *renderer) renderRow(e progress.Entry, adj []key.Adjacency, nameWidth, width int, colored bool) string {
	prefix := make([]byte, 0, len(adj)*2)
	for _, a := range adj {
		prefix = append(prefix, []byte(a.String()+" ")...)
	}

	name := e.Value.Name
	if n := utf8.RuneCountInString(name); n < nameWidth {
		name += strings.Repeat(" ", nameWidth-n)
	}

	value := "n/a"
	pct := ""
	throughput := ""
	if e.Value.Unit != nil {
		value = e.Value.Unit.DisplayValue(e.Value.Step, e.Value.Max)
		if e.Value.Max != nil {
			pct = e.Value.Unit.DisplayPercentage(e.Value.Step, *e.Value.Max)
		}
		if r.opts.Throughput {
			if th := r.throughput[e.Key]; th != nil {
				if rate, ok := th.Rate(); ok {
					throughput = e.Value.Unit.DisplayThroughput(rate)
				}
			}
		}
	}

	fields := []string{string(prefix) + "│ " + name, value}
	if pct != "" {
		fields = append(fields, pct)
	}
	if throughput != "" {
		fields = append(fields, throughput)
	}
	line := strings.Join(fields, "  ")
	line = truncate(line, width)

	if !colored {
		return line
	}
	style := lipgloss.NewStyle()
	switch e.Value.Phase {
	case progress.Blocked, progress.Halted:
		style = style.Foreground(lipgloss.Color("3"))
	}
	if e.Value.Failed {
		style = style.Foreground(lipgloss.Color("1"))
	}
	return style.Render(line)
}

// truncate shortens s with an ellipsis marker if it exceeds width
// runes; it never wraps.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if n := utf8.RuneCountInString(s); n <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
