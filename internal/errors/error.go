package errors

import (
	stderrors "errors"
	"fmt"
	"go/scanner"
	"go/token"
	"os"
	"strings"
)

// Category groups errors by the tool stage that reports them.
type Category string

const (
	CategoryGenerate   Category = "generate"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// snippetRadius is the number of source lines shown on each side of an
// error position.
const snippetRadius = 2

// Location is a position in a Go source file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns file:line[:column].
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Snippet is a run of source lines around a Location.
type Snippet struct {
	// Start is the line number of Lines[0].
	Start int
	Lines []string
}

// Error is a coded error of the nestroute tooling.
type Error struct {
	// Code is the registry key, e.g. "E200". Empty for ad hoc errors.
	Code     string
	Category Category

	// Message is a one-line summary, Detail a longer explanation.
	Message string
	Detail  string

	// Location and Snippet point into the annotated source, when known.
	Location *Location
	Snippet  *Snippet

	Suggestion string
	DocURL     string

	Wrapped error
}

// New returns the error registered under code.
func New(code string) *Error {
	tmpl, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
		DocURL:   tmpl.DocURL,
	}
}

// Newf returns an uncoded error.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is matches another *Error with the same code, so that
// errors.Is(err, errors.New("E200")) works through wrapping and joins.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// At records pos and the source lines around it. A position without a file
// name is ignored.
func (e *Error) At(pos token.Position) *Error {
	if pos.Filename == "" || pos.Line <= 0 {
		return e
	}
	e.Location = &Location{File: pos.Filename, Line: pos.Line, Column: pos.Column}
	e.Snippet = readSnippet(pos.Filename, pos.Line)
	return e
}

// AtParseError records the position of the first error reported by
// go/parser and wraps err.
func (e *Error) AtParseError(err error) *Error {
	var list scanner.ErrorList
	if stderrors.As(err, &list) && len(list) > 0 {
		e.At(list[0].Pos)
		e.Detail = list[0].Msg
	}
	return e.Wrap(err)
}

func (e *Error) WithMessagef(format string, args ...any) *Error {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readSnippet returns the lines of file within snippetRadius of line.
func readSnippet(file string, line int) *Snippet {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// go/parser reports an unexpected end of file one line past the last.
	start := max(line-snippetRadius, 1)
	end := min(line+snippetRadius, len(lines))
	if start > end {
		return nil
	}
	return &Snippet{Start: start, Lines: lines[start-1 : end]}
}

// Codes returns the codes of every *Error in err, descending into
// errors.Join trees.
func Codes(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var codes []string
		for _, e := range joined.Unwrap() {
			codes = append(codes, Codes(e)...)
		}
		return codes
	}
	var e *Error
	if stderrors.As(err, &e) {
		return []string{e.Code}
	}
	return nil
}
