// Copyright © 2018 The ELPS authors

package token

import (
	"fmt"
	"strings"
)

// Token is a lexeme along with its location in the input.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants produced by the minilisp lexer.
const (
	INVALID Type = iota
	ERROR
	EOF

	HASH_BANG

	// Atomic expressions & literals
	SYMBOL
	INT
	BOOL
	STRING

	COMMENT

	QUOTE

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:   "invalid",
	ERROR:     "error",
	EOF:       "EOF",
	HASH_BANG: "#!",
	SYMBOL:    "symbol",
	INT:       "int",
	BOOL:      "bool",
	STRING:    "string",
	COMMENT:   ";",
	QUOTE:     "'",
	PAREN_L:   "(",
	PAREN_R:   ")",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location identifies a position in a named source stream.
type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "<unknown>"
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError is an error produced while reading source text.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}

// UnquoteString strips the quotes surrounding a string literal and replaces
// each backslash sequence with the character following the backslash.
func UnquoteString(text string) string {
	text = text[1 : len(text)-1]
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var b strings.Builder
	escaped := false
	for _, c := range text {
		if c == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}
