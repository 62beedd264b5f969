// Package output provides consistent CLI output formatting for stencil.
// Colors are applied only when writing to a terminal; piped output stays plain
// so scripts can grep the report.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer provides formatted output for the CLI.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a Writer for the given destination. Color is enabled only when
// the destination is a terminal.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: GetStyles(!isTerminal(out)),
	}
}

// NewPlain creates a Writer that never emits color. Used for tests and for
// machine-consumed output.
func NewPlain(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: NoColorStyles(),
	}
}

// isTerminal reports whether out is an interactive terminal.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Header prints a bold section header.
func (w *Writer) Header(msg string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Header.Render(msg))
}

// Status prints a plain status line.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Statusf prints a formatted status line.
func (w *Writer) Statusf(format string, args ...any) {
	w.Status(fmt.Sprintf(format, args...))
}

// Pass prints a passed-check line: "PASS <description>".
func (w *Writer) Pass(description string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.styles.Pass.Render("PASS"), description)
}

// Fail prints a failed-check line: "FAIL <description> (missing: <target>)".
func (w *Writer) Fail(description, target string) {
	_, _ = fmt.Fprintf(w.out, "%s %s %s\n",
		w.styles.Fail.Render("FAIL"),
		description,
		w.styles.Dim.Render("(missing: "+target+")"))
}

// Success prints a success notice.
func (w *Writer) Success(msg string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Pass.Render(msg))
}

// Successf prints a formatted success notice.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning notice.
func (w *Writer) Warning(msg string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Warning.Render(msg))
}

// Warningf prints a formatted warning notice.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error notice.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Fail.Render(msg))
}

// Errorf prints a formatted error notice.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
