// Package diag implements the diagnostics collaborator described in spec
// section 6: a sink that accumulates errors and warnings with source
// locations, and a formatter that renders them for a terminal or a log
// file.
package diag

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Level classifies a Diagnostic's severity.
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Location identifies a span of source text: a file id and the first and
// last byte offsets it covers. Line/column are not stored here; a
// front-end that needs them recovers them from Offset and the source text.
type Location struct {
	File  string
	Start int
	End   int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Start == l.End {
		return fmt.Sprintf("%s:%d", l.File, l.Start)
	}
	return fmt.Sprintf("%s:%d-%d", l.File, l.Start, l.End)
}

// Label attaches a short text note to a Location, the way a single
// underlined span is called out beneath a diagnostic message.
type Label struct {
	Location Location
	Text     string
}

// Diagnostic is one error or warning, optionally pointing at one or more
// labeled source spans.
type Diagnostic struct {
	Message string
	Labels  []Label
	Level   Level
}

func (d Diagnostic) String() string {
	if len(d.Labels) == 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Level, d.Message, d.Labels[0].Location)
}

// Sink accumulates diagnostics for one pass. It is append-only for the
// duration of that pass and is expected to be flushed (read and discarded)
// between passes.
type Sink struct {
	diagnostics []Diagnostic
}

// AddError appends an Error-level diagnostic.
func (s *Sink) AddError(message string, labels ...Label) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Message: message, Labels: labels, Level: LevelError})
}

// AddWarning appends a Warning-level diagnostic.
func (s *Sink) AddWarning(message string, labels ...Label) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Message: message, Labels: labels, Level: LevelWarning})
}

// HasError reports whether any Error-level diagnostic has been recorded.
// The caller (compiler driver) reports success only when this is false.
func (s *Sink) HasError() bool {
	for _, d := range s.diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic recorded so far, in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Errors returns only the Error-level diagnostics, in emission order.
func (s *Sink) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Level == LevelError {
			out = append(out, d)
		}
	}
	return out
}

// Reset discards every recorded diagnostic, readying the sink for the next
// pass.
func (s *Sink) Reset() {
	s.diagnostics = nil
}

// Formatter renders a Sink's diagnostics to a writer, coloring by level
// when the writer is a terminal and summarizing counts with grouped digits
// once the list grows large.
type Formatter struct {
	Writer io.Writer
	Color  bool
}

// NewFormatter builds a Formatter that auto-detects whether w is a
// terminal (via golang.org/x/... isatty) to decide whether to color
// output.
func NewFormatter(w io.Writer) *Formatter {
	color := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Formatter{Writer: w, Color: color}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Format writes every diagnostic in sink, one per line, followed by a
// trailing summary line once the sink holds more than a handful of
// entries.
func (f *Formatter) Format(sink *Sink) {
	var errCount, warnCount int
	for _, d := range sink.Diagnostics() {
		f.formatOne(d)
		switch d.Level {
		case LevelError:
			errCount++
		case LevelWarning:
			warnCount++
		}
	}
	if errCount+warnCount > 8 {
		fmt.Fprintf(f.Writer, "%s errors, %s warnings\n",
			humanize.Comma(int64(errCount)), humanize.Comma(int64(warnCount)))
	}
}

func (f *Formatter) formatOne(d Diagnostic) {
	prefix, color := "warning", ansiYellow
	if d.Level == LevelError {
		prefix, color = "error", ansiRed
	}
	if f.Color {
		fmt.Fprintf(f.Writer, "%s%s%s: %s\n", color, prefix, ansiReset, d.Message)
	} else {
		fmt.Fprintf(f.Writer, "%s: %s\n", prefix, d.Message)
	}
	for _, l := range d.Labels {
		fmt.Fprintf(f.Writer, "    at %s: %s\n", l.Location, l.Text)
	}
}
