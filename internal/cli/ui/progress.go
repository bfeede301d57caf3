package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar draws a single-line bar for determinate operations
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
	message string
	noColor bool
}

// NewProgressBar creates a new progress bar 40 cells wide
func NewProgressBar(w io.Writer, message string, noColor bool) *ProgressBar {
	return &ProgressBar{writer: w, width: 40, message: message, noColor: noColor}
}

// Update sets progress to done out of total and redraws the bar. It has the
// shape of materialize.Options.Progress.
func (p *ProgressBar) Update(done, total int) {
	p.total = total
	p.current = done
	if p.current > p.total {
		p.current = p.total
	}
	p.render()
}

// Finish completes the bar and ends the line. A bar that never rendered
// writes nothing.
func (p *ProgressBar) Finish() {
	if p.total == 0 {
		return
	}
	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total)
	filled := int(float64(p.width) * percent)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filled))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filled))
	bar.WriteString("]")

	fmt.Fprintf(p.writer, "\r%s %3d%% %s", bar.String(), int(percent*100), p.message)
}
