// Copyright © 2018 The ELPS authors

package token

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when the input contains a byte sequence that is
// not valid utf-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")

// Scanner facilitates construction of tokens from a rune stream (io.Reader).
// The scanner tracks byte offset, line, and column of every rune so emitted
// tokens carry a complete Location.
type Scanner struct {
	file string
	path string
	r    *bufio.Reader

	text []rune
	c    rune

	// position of the next rune to be scanned
	pos  int
	line int
	col  int

	// position of the first rune in the current token
	start Location

	peek    rune
	peekN   int
	peekOK  bool
	readErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
	}
	s.Ignore()
	return s
}

// SetPath associates a physical location (e.g. filesystem path) with s.
func (s *Scanner) SetPath(path string) {
	s.path = path
	s.start.Path = path
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text = s.text[:0]
	s.start = Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return string(s.text)
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// LocStart returns the location of the first rune in the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}

// Loc returns the location of the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Peek returns the next rune to be scanned.  Peek returns false when the
// input is exhausted or a read error occurred.
func (s *Scanner) Peek() (rune, bool) {
	if s.peekOK {
		return s.peek, true
	}
	if s.readErr != nil {
		return 0, false
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.readErr = err
		return 0, false
	}
	if c == utf8.RuneError && n == 1 {
		s.readErr = ErrInvalidUTF8
		return 0, false
	}
	s.peek, s.peekN, s.peekOK = c, n, true
	return c, true
}

// ScanRune consumes the next rune, adding it to the current token.
func (s *Scanner) ScanRune() error {
	c, ok := s.Peek()
	if !ok {
		return s.readErr
	}
	s.peekOK = false
	s.c = c
	s.text = append(s.text, c)
	s.pos += s.peekN
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// Err returns the read error that stopped the scanner, if any.  Reaching the
// end of the input is not an error.
func (s *Scanner) Err() error {
	if s.peekOK || s.readErr == io.EOF {
		return nil
	}
	return s.readErr
}

// EOF returns true when the input has been fully consumed.
func (s *Scanner) EOF() bool {
	_, ok := s.Peek()
	return !ok && s.readErr == io.EOF
}

// Accept scans the next rune if fn returns true for it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune() == nil
}

// AcceptRune scans the next rune if it is c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(c2 rune) bool { return c == c2 })
}

// AcceptAny scans the next rune if it is contained in chars.
func (s *Scanner) AcceptAny(chars string) bool {
	return s.Accept(func(c rune) bool { return strings.ContainsRune(chars, c) })
}

// AcceptSeq scans runes as long as fn returns true and returns the number of
// runes scanned.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// AcceptSeqSpace scans a (possibly empty) sequence of whitespace.
func (s *Scanner) AcceptSeqSpace() int {
	return s.AcceptSeq(unicode.IsSpace)
}
