package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/daedalus-dc/internal/source"
)

// RenderTerminal formats diags as a sequence of file:line:col blocks with
// a source excerpt and a caret under the primary span's start byte,
// matching the teacher compiler's CompilerError.Format shape (one header
// line, one source line, one caret line, one message line) rather than a
// one-line-per-diagnostic log.
func RenderTerminal(db *source.Database, diags []Diagnostic, color bool) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderOne(db, d, color))
	}
	return sb.String()
}

func renderOne(db *source.Database, d Diagnostic, color bool) string {
	var sb strings.Builder
	label := primaryOf(d)

	line, col, srcLine := locate(db, label)
	header := fmt.Sprintf("%s [%s]", fileName(db, label.File), d.Code)
	if line >= 0 {
		header = fmt.Sprintf("%s:%d:%d [%s]", fileName(db, label.File), line+1, col+1, d.Code)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	if srcLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", line+1)
		sb.WriteString(lineNumStr)
		sb.WriteString(srcLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// locate resolves a label's line, 0-based column, and source line text by
// consulting the Source DB's line-start table. It returns line == -1 when
// the file/offset can't be resolved (programming error, never surfaced to
// users under normal operation).
func locate(db *source.Database, l Label) (line, col int, srcLine string) {
	f, err := db.Get(l.File)
	if err != nil {
		return -1, 0, ""
	}
	ln, err := db.LineIndex(l.File, l.Span.Start)
	if err != nil {
		return -1, 0, ""
	}
	rng, err := db.LineRange(l.File, ln)
	if err != nil {
		return ln, l.Span.Start, ""
	}
	col = l.Span.Start - rng.Start
	text := string(f.Bytes[rng.Start:rng.End])
	text = strings.TrimRight(text, "\r\n")
	return ln, col, text
}
