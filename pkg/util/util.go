package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/token"
	"golang.org/x/term"
)

// SourceFileRecord tracks the name and content of a single source file.
type SourceFileRecord struct {
	Name    string
	Content []byte
}

// Reporter prints diagnostics for Unknown tokens in the usual
// file:line:col form, followed by the offending source line and a caret.
type Reporter struct {
	out   io.Writer
	cfg   *config.Config
	files []SourceFileRecord
	color bool
	count int
}

func NewReporter(out io.Writer, cfg *config.Config, files []SourceFileRecord) *Reporter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Reporter{out: out, cfg: cfg, files: files, color: color}
}

// Count is the number of diagnostics printed so far.
func (r *Reporter) Count() int { return r.count }

// Report prints a warning for tok if it is an Unknown token whose problem is
// enabled, and reports whether anything was printed.
func (r *Reporter) Report(tok token.Token) bool {
	if tok.Type != token.Unknown || !r.cfg.Reports(tok.Problem) {
		return false
	}
	msg := tok.Problem.Message()
	if tok.Value != "" {
		msg = fmt.Sprintf("%s: %q", msg, tok.Value)
	}
	r.Warn(tok, "%s [-W%s]", msg, tok.Problem)
	return true
}

// Warn prints a formatted warning positioned at tok.
func (r *Reporter) Warn(tok token.Token, format string, args ...any) {
	r.count++
	filename, line, col := r.findFileAndLine(tok)
	fmt.Fprintf(r.out, "%s:%d:%d: %s ", filename, line, col, r.paint("33", "warning:"))
	fmt.Fprintf(r.out, format, args...)
	fmt.Fprintln(r.out)
	r.printErrorLine(tok)
}

func (r *Reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// findFileAndLine converts a token position to the 1-based form shown to users
func (r *Reporter) findFileAndLine(tok token.Token) (filename string, line, col uint) {
	if tok.FileIndex < 0 || tok.FileIndex >= len(r.files) {
		return "unknown", tok.Line + 1, tok.Column + 1
	}
	return r.files[tok.FileIndex].Name, tok.Line + 1, tok.Column + 1
}

// printErrorLine prints the source line and a caret under the token
func (r *Reporter) printErrorLine(tok token.Token) {
	if tok.FileIndex < 0 || tok.FileIndex >= len(r.files) {
		return
	}
	content := r.files[tok.FileIndex].Content
	if tok.Offset < 0 || tok.Offset > len(content) {
		return
	}

	lineStart := tok.Offset - int(tok.Column)
	if lineStart < 0 {
		lineStart = 0
	}
	lineEnd := len(content)
	if i := bytes.IndexByte(content[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}

	fmt.Fprintf(r.out, "  %s\n", content[lineStart:lineEnd])

	underline := "^"
	if tok.Width > 1 {
		underline += strings.Repeat("~", int(tok.Width)-1)
	}
	fmt.Fprintf(r.out, "  %s%s\n", strings.Repeat(" ", int(tok.Column)), r.paint("32", underline))
}
