package tui

import (
	"github.com/charmbracelet/lipgloss"

	prodash "github.com/mobanhawi/prodash/progress"
)

var (
	colorAccent = lipgloss.Color("#9b59b6")
	colorTeal   = lipgloss.Color("#1abc9c")
	colorDim    = lipgloss.Color("#444466")
	colorWhite  = lipgloss.Color("#e8e8f0")
	colorGray   = lipgloss.Color("#888899")
	colorRed    = lipgloss.Color("#e74c3c")
	colorYellow = lipgloss.Color("#f1c40f")
	colorGreen  = lipgloss.Color("#2ecc71")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 2)

	styleDivider = lipgloss.NewStyle().
			Foreground(colorDim)

	styleRowName = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleRowBlocked = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleRowFailed = lipgloss.NewStyle().
			Foreground(colorRed)

	styleRowDone = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleValue = lipgloss.NewStyle().
			Foreground(colorTeal).
			Align(lipgloss.Right)

	styleElapsed = lipgloss.NewStyle().
			Foreground(colorGray)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorGray).
			Background(lipgloss.Color("#111122")).
			Padding(0, 1)

	styleKey = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleMessageInfo = lipgloss.NewStyle().
				Foreground(colorGray)

	styleMessageSuccess = lipgloss.NewStyle().
				Foreground(colorGreen)

	styleMessageFailure = lipgloss.NewStyle().
				Foreground(colorRed)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("#2a1a4a")).
			Padding(1, 2)
)

// rowNameStyle picks the name column's style from a task's terminal and
// phase state.
func rowNameStyle(v prodash.Value) lipgloss.Style {
	if v.Failed {
		return styleRowFailed
	}
	if v.IsDone() {
		return styleRowDone
	}
	switch v.Phase {
	case prodash.Blocked, prodash.Halted:
		return styleRowBlocked
	default:
		return styleRowName
	}
}
