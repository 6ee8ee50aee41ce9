// Package render formats log records for the terminal.
package render

import (
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// TimeLayout drops the year and sub-second precision; display only.
const TimeLayout = "Jan 02 15:04:05"

var (
	colorTime    = fg(240)
	colorHost    = fg(166)
	colorApp     = fg(74)
	colorMessage = fg(246)
	colorReset   = termenv.CSI + termenv.ResetSeq + "m"
)

var colorTerms = regexp.MustCompile(`(?i)^screen|^xterm|^vt100|color|ansi|cygwin|linux`)

func fg(code int) string {
	return termenv.CSI + termenv.ANSI256Color(code).Sequence(false) + "m"
}

// Renderer turns records into single lines.
type Renderer struct {
	// Location for timestamps, time.Local when nil.
	Location *time.Location
}

// Render returns `<ts> <host> <app> [<level>] <line>`, each field wrapped in
// its own colour when color is set.
func (r Renderer) Render(rec logdnasdk.LogRecord, color bool) string {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	ts := rec.Time().In(loc).Format(TimeLayout)

	var level string
	if rec.Level != "" {
		level = "[" + rec.Level + "] "
	}

	var b strings.Builder
	if color {
		b.WriteString(colorTime + ts)
		b.WriteString(" " + colorHost + rec.Host)
		b.WriteString(" " + colorApp + rec.App)
		b.WriteString(" " + level)
		b.WriteString(colorMessage + rec.Line)
		b.WriteString(colorReset)
		return b.String()
	}

	b.WriteString(ts + " " + rec.Host + " " + rec.App + " " + level + rec.Line)
	return b.String()
}

// RenderTime formats t the way record timestamps are shown.
func (r Renderer) RenderTime(t time.Time) string {
	if r.Location != nil {
		t = t.In(r.Location)
	}
	return t.Format(TimeLayout)
}

// ColorCapable reports whether term supports colours and out is not
// redirected.
func ColorCapable(term string, out *os.File) bool {
	if !colorTerms.MatchString(term) || out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
