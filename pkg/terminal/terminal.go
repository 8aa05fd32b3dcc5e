// Package terminal checks the controlling terminal before the dashboard
// takes it over: both ends must be terminals and the window must be big
// enough for the grid.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

var (
	ErrNotTerminal = errors.New("not a terminal")
	ErrTooSmall    = errors.New("terminal too small")
)

// Size is a terminal size in character cells.
type Size struct {
	Cols int
	Rows int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Cols, s.Rows) }

// Fits reports whether s is at least min in both directions.
func (s Size) Fits(min Size) bool { return s.Cols >= min.Cols && s.Rows >= min.Rows }

// MinSize is the smallest window the dashboard starts in.
var MinSize = Size{Cols: 40, Rows: 12}

// GetSize returns the size of the terminal on fd. When the query fails it
// falls back to COLUMNS/LINES, then 80x24.
func GetSize(fd uintptr) Size {
	if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
		return Size{Cols: w, Rows: h}
	}
	return sizeFromEnv()
}

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Check verifies that in and out are terminals and out is at least
// MinSize.
func Check(in, out *os.File) error {
	if !term.IsTerminal(in.Fd()) {
		return fmt.Errorf("stdin: %w", ErrNotTerminal)
	}
	if !IsTerminal(out) {
		return fmt.Errorf("stdout: %w", ErrNotTerminal)
	}
	if s := GetSize(out.Fd()); !s.Fits(MinSize) {
		return fmt.Errorf("%w: %s, need at least %s", ErrTooSmall, s, MinSize)
	}
	return nil
}

func sizeFromEnv() Size {
	return Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)}
}

// envInt reads a positive integer from the named variable, or fallback.
func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
