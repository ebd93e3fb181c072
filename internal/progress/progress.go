package progress

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinner = []string{`\`, "|", "/", "-"}

// Line prints a single self-overwriting status line per frame:
//
//	\ Generating | 3/12 (25%) | word
type Line struct {
	w io.Writer

	glyph   lipgloss.Style
	label   lipgloss.Style
	counter lipgloss.Style
	token   lipgloss.Style
	done    lipgloss.Style
	subtle  lipgloss.Style
}

// NewLine styles output for the color profile of w.
func NewLine(w io.Writer) *Line {
	r := lipgloss.NewRenderer(w)
	return &Line{
		w:       w,
		glyph:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#888899")),
		counter: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff")),
		token:   r.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		done:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("#666688")),
	}
}

// Percent truncates to two decimals, matching the status line format.
func Percent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Floor(float64(done)/float64(total)*10000) / 100
}

// Frame reports that frame index (0-based) of total is being produced.
func (l *Line) Frame(index, total int, token string) {
	pct := strconv.FormatFloat(Percent(index+1, total), 'f', -1, 64)
	fmt.Fprintf(l.w, "%s %s | %s | %s%s\r",
		l.glyph.Render(spinner[index%len(spinner)]),
		l.label.Render("Generating"),
		l.counter.Render(fmt.Sprintf("%d/%d (%s%%)", index+1, total, pct)),
		l.token.Render(token),
		strings.Repeat(" ", 20),
	)
}

// Finished ends the status line and prints the written files.
func (l *Line) Finished(paths []string, frames int) {
	fmt.Fprintln(l.w)
	fmt.Fprintln(l.w, l.done.Render("Finished!"))
	for _, p := range paths {
		fmt.Fprintf(l.w, "  %s %s\n", p, l.subtle.Render(fmt.Sprintf("(%d frames)", frames)))
	}
}
