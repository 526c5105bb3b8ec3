// Package line implements the single-region, in-place redraw renderer:
// a bounded subset of the progress tree rendered into a fixed number of
// terminal lines starting at the current cursor position.
package line

import (
	"fmt"
	"io"
	"os"

	"github.com/containerd/console"
	"github.com/morikuni/aec"
)

// Terminal is the external collaborator this renderer consumes: move
// the cursor, erase lines, hide/show the cursor, and query dimensions.
// Narrowed to exactly what a single-region redraw needs.
type Terminal interface {
	io.Writer
	// MoveCursorUp moves the cursor up n lines, column unchanged.
	MoveCursorUp(n int) error
	// EraseLineToEnd clears from the cursor to the end of the current line.
	EraseLineToEnd() error
	HideCursor() error
	ShowCursor() error
	// Size returns the terminal's current dimensions, or ok=false if it
	// cannot be determined (callers then assume 80x24).
	Size() (width, height int, ok bool)
	// IsTerminal reports whether the underlying writer is attached to a
	// real terminal (vs. a pipe/file), used for output_is_terminal auto-detect.
	IsTerminal() bool
}

// stdTerminal is the default Terminal backed by os.Stdout, using
// containerd/console for size queries and morikuni/aec for cursor
// movement and line erasure.
type stdTerminal struct {
	w io.Writer
	c console.Console
}

// NewStdTerminal builds a Terminal around os.Stdout.
func NewStdTerminal() Terminal {
	t := &stdTerminal{w: os.Stdout}
	if c, err := console.ConsoleFromFile(os.Stdout); err == nil {
		t.c = c
	}
	return t
}

func (t *stdTerminal) Write(p []byte) (int, error) { return t.w.Write(p) }

func (t *stdTerminal) MoveCursorUp(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprint(t.w, aec.Up(uint(n)))
	return err
}

func (t *stdTerminal) EraseLineToEnd() error {
	_, err := fmt.Fprint(t.w, aec.EraseLine(aec.EraseModes.Tail))
	return err
}

func (t *stdTerminal) HideCursor() error {
	_, err := fmt.Fprint(t.w, aec.Hide)
	return err
}

func (t *stdTerminal) ShowCursor() error {
	_, err := fmt.Fprint(t.w, aec.Show)
	return err
}

func (t *stdTerminal) Size() (width, height int, ok bool) {
	if t.c == nil {
		return 0, 0, false
	}
	size, err := t.c.Size()
	if err != nil {
		return 0, 0, false
	}
	return int(size.Width), int(size.Height), true
}

func (t *stdTerminal) IsTerminal() bool {
	return t.c != nil
}
