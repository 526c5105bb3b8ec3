package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"

	"github.com/mobanhawi/prodash/key"
	prodash "github.com/mobanhawi/prodash/progress"
)

// indentWidth is how far each message-pane line is indented.
const indentWidth = 2

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing…"
	}
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.start).Round(time.Second)
	header := styleHeader.Width(m.width).Render(fmt.Sprintf(
		"  %s — %d tasks — %s — press ? for help",
		m.opts.title(), len(m.snapshot), elapsed,
	))
	divider := styleDivider.Render(strings.Repeat("─", m.width))

	msgHeight := int(float64(m.height) * m.msgPaneFrac)
	if msgHeight < 1 {
		msgHeight = 1
	}
	taskHeight := m.height - 4 - msgHeight // header+2 dividers+footer
	if taskHeight < 1 {
		taskHeight = 1
	}

	taskPane := m.viewTasks(taskHeight)
	msgPane := m.viewMessages(msgHeight)
	footer := m.viewFooter()

	lines := []string{header, taskPane, divider, msgPane, divider, footer}
	if m.showHelp {
		lines = append(lines, m.viewHelp())
	}
	return strings.Join(lines, "\n")
}

// nameColumnWidth reads the width cache computed by recomputeNameWidth
// (in Update, the only phase allowed to mutate Model state that must
// persist across frames); View itself never recomputes it.
func (m Model) nameColumnWidth() int {
	if m.cachedNameWidth > 0 {
		return m.cachedNameWidth
	}
	return 8
}

func (m Model) viewTasks(height int) string {
	nameWidth := m.nameColumnWidth()

	rows := make([]string, 0, len(m.snapshot))
	for i, e := range m.snapshot {
		var prevKey key.Key
		if i > 0 {
			prevKey = m.snapshot[i-1].Key
		}
		adj := key.Adjacencies(prevKey, e.Key, e.Key.Depth())
		rows = append(rows, m.viewTaskRow(e, adj, nameWidth))
	}

	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewTaskRow(e prodash.Entry, adj []key.Adjacency, nameWidth int) string {
	var prefix strings.Builder
	for _, a := range adj {
		prefix.WriteString(a.String())
		prefix.WriteByte(' ')
	}

	name := e.Value.Name
	if n := utf8.RuneCountInString(name); n < nameWidth {
		name += strings.Repeat(" ", nameWidth-n)
	}
	name = rowNameStyle(e.Value).Render(name)

	value := "n/a"
	pct := 0.0
	throughput := ""
	if e.Value.Unit != nil {
		value = e.Value.Unit.DisplayValue(e.Value.Step, e.Value.Max)
		if p, ok := e.Value.Percentage(); ok {
			pct = p
		}
	}

	row, ok := m.rows[e.Key]
	bar := ""
	if ok {
		row.bar.Width = 20
		bar = row.bar.ViewAs(pct / 100)
		if m.opts.Throughput && e.Value.Unit != nil {
			if rate, rok := row.throughput.Rate(); rok {
				throughput = e.Value.Unit.DisplayThroughput(rate)
			}
		}
	}

	elapsed := ""
	if ok {
		elapsed = row.timer.Elapsed().Round(time.Second).String()
	}

	fields := []string{
		prefix.String() + "│ " + name,
		bar,
		styleValue.Render(value),
		styleElapsed.Render(elapsed),
	}
	if m.opts.Throughput {
		fields = append(fields, styleValue.Render(throughput))
	}
	return strings.Join(fields, "  ")
}

// viewMessages renders the message pane with the newest message
// pinned to the bottom row, like a log tail. scrollOffset counts how
// many messages back from the newest the view is anchored — 0 means
// stuck to the newest message; scrolling back (j) increases it.
func (m Model) viewMessages(height int) string {
	msgs := m.messages
	n := len(msgs)

	end := n - m.scrollOffset
	if end > n {
		end = n
	}
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	visible := msgs[start:end]

	lines := make([]string, 0, height)
	for i := 0; i < height-len(visible); i++ {
		lines = append(lines, "")
	}
	for _, msg := range visible {
		style := styleMessageInfo
		switch msg.Level {
		case prodash.Success:
			style = styleMessageSuccess
		case prodash.Failure:
			style = styleMessageFailure
		}
		line := fmt.Sprintf("[%s] %s", msg.Origin, msg.Content)
		lines = append(lines, style.Render(indent.String(line, indentWidth)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewFooter() string {
	k := func(key, desc string) string {
		return styleKey.Render(key) + " " + desc + "  "
	}
	hints := " " +
		k("j/k", "scroll") +
		k("{/}", "resize") +
		k("1-9", "speed") +
		k("?", "help") +
		k("q", "quit")
	return styleFooter.Width(m.width).Render(hints)
}

func (m Model) viewHelp() string {
	return styleHelp.Width(m.width - 4).Render(
		"j/k scroll the message pane\n" +
			"{ / } shrink / grow the message pane\n" +
			"1-9   set scroll speed\n" +
			"?     toggle this help\n" +
			"q     quit",
	)
}
