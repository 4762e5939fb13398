// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// tabWidth is the number of columns a tab occupies in rendered source.
const tabWidth = 4

// Renderer formats diagnostics as annotated source snippets.  A Renderer
// caches the source files it reads and is not safe for concurrent use.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)

	sources map[string][]string
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	return r.RenderAll(w, []Diagnostic{d})
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	var buf bytes.Buffer
	for i, d := range diags {
		if i > 0 {
			buf.WriteByte('\n')
		}
		r.render(&buf, d, p)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) render(b *bytes.Buffer, d Diagnostic, p palette) {
	b.WriteString(p.severity(d.Severity) + d.Severity.String())
	if d.Condition != "" {
		b.WriteString("[" + d.Condition + "]")
	}
	fmt.Fprintf(b, "%s: %s%s%s\n", p.reset, p.bold, d.Message, p.reset)
	for _, span := range d.Spans {
		r.renderSpan(b, span, p)
	}
	for _, frame := range d.CallPath {
		fmt.Fprintf(b, "   %s=%s %s\n", p.boldCyan, p.reset, frame)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(b, "   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
}

func (r *Renderer) renderSpan(b *bytes.Buffer, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	fmt.Fprintf(b, "  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		fmt.Fprintf(b, "   %s|%s\n", p.boldBlue, p.reset)
		return
	}
	num := strconv.Itoa(span.Line)
	gutter := p.boldBlue + strings.Repeat(" ", len(num)) + " |" + p.reset
	offset, width := underline(source, span)

	fmt.Fprintf(b, " %s\n", gutter)
	fmt.Fprintf(b, " %s%s |%s  %s\n", p.boldBlue, num, p.reset, expandTabs(source))
	fmt.Fprintf(b, " %s  %s%s%s%s", gutter, strings.Repeat(" ", offset),
		p.boldRed, strings.Repeat("^", width), p.reset)
	if span.Label != "" {
		fmt.Fprintf(b, " %s%s%s", p.boldRed, span.Label, p.reset)
	}
	b.WriteByte('\n')
	fmt.Fprintf(b, " %s\n", gutter)
}

// sourceLine returns line of file.  Files are read once per Renderer.
func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	lines, ok := r.sources[file]
	if !ok {
		lines = r.readLines(file)
		if r.sources == nil {
			r.sources = make(map[string][]string)
		}
		r.sources[file] = lines
	}
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func (r *Renderer) readLines(file string) []string {
	read := r.SourceReader
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(file)
	if err != nil {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// underline returns the display offset and width of the carets marking
// span in source.
func underline(source string, span Span) (int, int) {
	col := span.Col
	if col <= 0 {
		col = 1
	}
	end := span.EndCol
	if end <= 0 {
		end = formEnd(source, col)
	}
	if end < col {
		end = col
	}
	if col-1 > len(source) {
		return displayWidth(source), 1
	}
	offset := displayWidth(source[:col-1])
	last := end
	if last > len(source) {
		last = len(source)
	}
	return offset, max(1, displayWidth(source[col-1:last]))
}

// formEnd returns the 1-based column of the last character of the form
// starting at col.  A list ends at its matching close paren when that is
// on the same line; anything else ends with its token.
func formEnd(source string, col int) int {
	start := col - 1
	if start >= len(source) {
		return col
	}
	if source[start] == '(' {
		if end := matchParen(source, start); end >= 0 {
			return end + 1
		}
		return col
	}
	end := start
	for end < len(source) && !strings.ContainsRune(" \t();", rune(source[end])) {
		end++
	}
	if end == start {
		return col
	}
	return end
}

// matchParen returns the index of the paren closing the one at open, or -1.
// Parens inside string literals are ignored and a comment ends the search.
func matchParen(source string, open int) int {
	depth := 0
	inString := false
	for i := open; i < len(source); i++ {
		c := source[i]
		switch {
		case inString && c == '\\':
			i++
		case inString:
			inString = c != '"'
		case c == '"':
			inString = true
		case c == ';':
			return -1
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the number of columns s occupies once tabs are
// expanded.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += tabWidth
		} else {
			w++
		}
	}
	return w
}

// fileFromWriter returns the *os.File behind w, if any, for terminal
// detection.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
