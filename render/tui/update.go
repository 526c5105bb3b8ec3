package tui

import (
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobanhawi/prodash/key"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.onTick()

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	// Everything else (stopwatch ticks, progress bar frame messages) is
	// routed to every row widget; each filters by its own internal ID.
	return m.dispatchToRows(msg)
}

func (m Model) dispatchToRows(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, r := range m.rows {
		var cmd tea.Cmd
		r.timer, cmd = r.timer.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		updated, cmd2 := r.bar.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			r.bar = bar
		}
		if cmd2 != nil {
			cmds = append(cmds, cmd2)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) onTick() (tea.Model, tea.Cmd) {
	now := time.Now()
	m.snapshot = m.root.SortedSnapshot(m.snapshot)

	var cmds []tea.Cmd
	live := make(map[key.Key]struct{}, len(m.snapshot))
	for _, e := range m.snapshot {
		live[e.Key] = struct{}{}
		row, startCmd := m.rowFor(e.Key, now)
		if startCmd != nil {
			cmds = append(cmds, startCmd)
		}
		pct, ok := e.Value.Percentage()
		if !ok {
			pct = 0
		}
		cmds = append(cmds, row.bar.SetPercent(pct/100))
		row.throughput.Sample(now, e.Value.Step)
	}
	cmds = append(cmds, m.prune(live)...)

	if m.opts.StopIfEmptyProgress && len(m.snapshot) == 0 {
		m.quitting = true
		return *m, tea.Quit
	}

	fresh, newSeq := m.root.CopyNewMessages(nil, m.lastMessageSeq)
	m.lastMessageSeq = newSeq
	if len(fresh) > 0 {
		m.messages = append(m.messages, fresh...)
		if over := len(m.messages) - m.opts.messageHistory(); over > 0 {
			m.messages = m.messages[over:]
		}
	}

	m.frameCount++
	m.recomputeNameWidth()

	cmds = append(cmds, tick(m.opts.refreshInterval()))
	return *m, tea.Batch(cmds...)
}

// recomputeNameWidth refreshes the cached task-name column width every
// columnRecomputeEvery frames instead of every frame, so the column
// never visibly jitters as names come and go.
func (m *Model) recomputeNameWidth() {
	if m.cachedNameWidth > 0 && m.frameCount-m.cachedNameWidthW < m.opts.columnRecomputeEvery() {
		return
	}
	w := 8
	for _, e := range m.snapshot {
		if n := utf8.RuneCountInString(e.Value.Name) + e.Key.Depth()*2; n > w {
			w = n
		}
	}
	if m.width > 0 {
		if max := m.width / 2; w > max {
			w = max
		}
	}
	m.cachedNameWidth = w
	m.cachedNameWidthW = m.frameCount
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if !m.opts.interruptible() {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "j", "down":
		m.scrollOffset += m.scrollSpeed
		m.clampScroll()
		return m, nil
	case "k", "up":
		m.scrollOffset -= m.scrollSpeed
		m.clampScroll()
		return m, nil
	case "{":
		m.msgPaneFrac -= 0.05
		if m.msgPaneFrac < 0.1 {
			m.msgPaneFrac = 0.1
		}
		return m, nil
	case "}":
		m.msgPaneFrac += 0.05
		if m.msgPaneFrac > 0.9 {
			m.msgPaneFrac = 0.9
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.scrollSpeed = int(msg.String()[0] - '0')
		return m, nil
	}
	return m, nil
}

func (m *Model) clampScroll() {
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	maxOffset := len(m.messages) - 1
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}
