package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// detailWidth is the column at which Detail text wraps.
const detailWidth = 72

// Printer writes errors to a terminal.
type Printer struct {
	// Color enables ANSI colors.
	Color bool

	// Compact writes each error on one line, as FormatCompact does.
	Compact bool
}

// Fprint writes err to w. Errors joined with errors.Join are written one
// after the other; errors that are not *Error are written by message.
func (p Printer) Fprint(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			p.Fprint(w, e)
		}
		return
	}

	var e *Error
	switch {
	case stderrors.As(err, &e) && p.Compact:
		fmt.Fprintln(w, e.FormatCompact())
	case e != nil:
		fmt.Fprint(w, p.format(e))
	case p.Compact:
		fmt.Fprintln(w, err.Error())
	default:
		fmt.Fprintf(w, "\n%s %s\n\n", p.paint(ansiRed+ansiBold, "ERROR:"), err.Error())
	}
}

// Format renders e over several lines without colors: header, location
// with the surrounding source, detail, hint and documentation link.
func (e *Error) Format() string {
	return Printer{}.format(e)
}

// FormatCompact renders e as "file:line:col: CODE: message". The location
// and the code are omitted when unknown.
func (e *Error) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	parts = append(parts, e.Error())
	return strings.Join(parts, ": ")
}

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

func (p Printer) paint(code, text string) string {
	if !p.Color {
		return text
	}
	return code + text + ansiReset
}

func (p Printer) format(e *Error) string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		fmt.Fprintf(&b, "%s %s", p.paint(ansiRed+ansiBold, "ERROR"), p.paint(ansiBold, e.Code+": "+e.Message))
	} else {
		fmt.Fprintf(&b, "%s %s", p.paint(ansiRed+ansiBold, "ERROR:"), e.Message)
	}
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", p.paint(ansiCyan, e.Location.String()))
		if e.Snippet != nil {
			p.writeSnippet(&b, e.Snippet, e.Location)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, detailWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", p.paint(ansiCyan, "Hint: "), e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", p.paint(ansiGray, "Learn more: "), p.paint(ansiBlue, e.DocURL))
	}
	return b.String()
}

// writeSnippet prints the snippet with line numbers, marking the error line
// and, when known, its column.
func (p Printer) writeSnippet(b *strings.Builder, s *Snippet, loc *Location) {
	bar := p.paint(ansiGray, " │ ")
	for i, line := range s.Lines {
		n := s.Start + i
		if n != loc.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", p.paint(ansiRed, "→ "), n, bar, line)
		if loc.Column > 0 {
			fmt.Fprintf(b, "         %s%s%s\n", p.paint(ansiGray, "│ "), caretIndent(line, loc.Column), p.paint(ansiRed, "^"))
		}
	}
}

// caretIndent returns the whitespace that puts a caret under byte column
// col of line, keeping tabs so the caret lines up with the source.
func caretIndent(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// wrapText splits text into lines of at most width bytes, breaking between
// words. A word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
