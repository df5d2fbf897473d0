package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	sectionColor = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.Bold)
	okColor      = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// initColors honors NO_COLOR on top of fatih/color's TTY detection.
func initColors() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

// ui renders human-readable command output to w.
type ui struct {
	w io.Writer
}

func newUI(w io.Writer) *ui {
	initColors()
	return &ui{w: w}
}

func (u *ui) section(title string) {
	_, _ = sectionColor.Fprintf(u.w, "\n▸ %s\n\n", title)
}

func (u *ui) field(label, value string) {
	_, _ = labelColor.Fprintf(u.w, "  %s: ", label)
	_, _ = fmt.Fprintln(u.w, value)
}

func (u *ui) ok(msg string) {
	_, _ = okColor.Fprintf(u.w, "✓ %s\n", msg)
}

func (u *ui) warn(msg string) {
	_, _ = warnColor.Fprintf(u.w, "⚠ %s\n", msg)
}

func (u *ui) line(msg string) {
	_, _ = fmt.Fprintln(u.w, msg)
}

func (u *ui) muted(msg string) {
	_, _ = mutedColor.Fprintf(u.w, "  %s\n", msg)
}

func (u *ui) bullets(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(u.w, "    • %s\n", item)
	}
}

// table prints rows under headers with left-aligned columns. Cells beyond the
// header count are dropped.
func (u *ui) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	pad := func(cells []string) string {
		out := make([]string, len(widths))
		for i := range widths {
			if i < len(cells) {
				out[i] = fmt.Sprintf("%-*s", widths[i], cells[i])
			} else {
				out[i] = strings.Repeat(" ", widths[i])
			}
		}
		return "  " + strings.TrimRight(strings.Join(out, "  "), " ")
	}

	_, _ = labelColor.Fprintln(u.w, pad(headers))
	for _, row := range rows {
		_, _ = fmt.Fprintln(u.w, pad(row))
	}
}

// plural formats n with the matching noun.
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
