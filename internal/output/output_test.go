package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_PassLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Pass("Button component exists")

	assert.Equal(t, "PASS Button component exists\n", buf.String())
}

func TestWriter_FailLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Fail("Button component exists", "src/components/Button.tsx")

	assert.Equal(t, "FAIL Button component exists (missing: src/components/Button.tsx)\n", buf.String())
}

func TestWriter_StatusAndNewline(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Statusf("Passed: %d", 3)
	w.Newline()
	w.Status("Failed: 1")

	assert.Equal(t, "Passed: 3\n\nFailed: 1\n", buf.String())
}

func TestWriter_BufferIsNotTerminal(t *testing.T) {
	// A bytes.Buffer must never be treated as a TTY: New must fall back to
	// plain styles so piped output contains no escape sequences.
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Pass("check")
	w.Fail("check", "target")
	w.Success("done")

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestGetStyles(t *testing.T) {
	plain := GetStyles(true)
	assert.Equal(t, "PASS", plain.Pass.Render("PASS"))

	// Styled render still contains the text itself.
	styled := GetStyles(false)
	assert.Contains(t, styled.Fail.Render("FAIL"), "FAIL")
}
