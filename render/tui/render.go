package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobanhawi/prodash/progress"
)

// Handle controls a running dashboard renderer.
type Handle struct {
	prog *tea.Program
	done chan error
}

// Stop requests the program quit, waits for bubbletea to restore the
// terminal (drop the alternate screen, show the cursor), then flushes
// stdout.
func (h *Handle) Stop() error {
	h.prog.Quit()
	err := <-h.done
	_ = os.Stdout.Sync()
	return err
}

// Wait blocks until the dashboard exits on its own (e.g. the user
// pressed q), without requesting shutdown.
func (h *Handle) Wait() error {
	return <-h.done
}

// Render starts the full-screen dashboard in its own goroutine,
// observing root until the returned Handle is stopped or the user
// quits.
func Render(root *progress.Root, opts Options) (*Handle, error) {
	m := New(root, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())

	h := &Handle{prog: prog, done: make(chan error, 1)}
	go func() {
		_, err := prog.Run()
		h.done <- err
	}()
	return h, nil
}
