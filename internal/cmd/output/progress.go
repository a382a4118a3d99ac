package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Progress renders a single self-overwriting progress line on a terminal.
type Progress struct {
	w     io.Writer
	label string
	shown bool
}

// NewProgress returns a progress line for w, or nil when w is not a terminal.
// A nil *Progress is safe to use and prints nothing.
func NewProgress(w io.Writer, label string) *Progress {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	return &Progress{w: w, label: label}
}

// Update redraws the line at percent.
func (p *Progress) Update(percent int) {
	if p == nil {
		return
	}
	p.shown = true
	fmt.Fprintf(p.w, "\r%s %3d%%", p.label, percent)
}

// Done ends the line so later output starts on a fresh one.
func (p *Progress) Done() {
	if p == nil || !p.shown {
		return
	}
	fmt.Fprintln(p.w)
}
