// Copyright © 2018 The ELPS authors

package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/luthersystems/minilisp/parser/token"
)

type LexFn func(*Lexer) []*token.Token

// runes which terminate a symbol or number
const delimiters = "()'\";"

type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

// ReadToken returns the next tokens in the input.  The final token returned
// for an input is always of type EOF or ERROR.
func (lex *Lexer) ReadToken() []*token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() []*token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		return lex.emitError(lex.scanner.Err())
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case '\'':
		return lex.emitText(token.QUOTE)
	case ';':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '#':
		return lex.readDispatch()
	case '"':
		return lex.readString()
	case '+', '-':
		if c, ok := lex.scanner.Peek(); ok && isDigit(c) {
			return lex.readNumber()
		}
		return lex.readSymbol()
	default:
		if isDigit(lex.scanner.Rune()) {
			return lex.readNumber()
		}
		return lex.readSymbol()
	}
}

func (lex *Lexer) readDispatch() []*token.Token {
	c, ok := lex.scanner.Peek()
	if !ok {
		return lex.errorf("unexpected EOF following #")
	}
	switch c {
	case 't', 'f':
		_ = lex.scanner.ScanRune()
		if lex.followedByWord() {
			return lex.errorf("invalid boolean literal starting: %s", lex.scanner.Text())
		}
		return lex.emitText(token.BOOL)
	case '!':
		_ = lex.scanner.ScanRune()
		lex.lex = (*Lexer).readHashBang
		return lex.emitText(token.HASH_BANG)
	default:
		return lex.errorf("invalid dispatch character %q", c)
	}
}

func (lex *Lexer) readHashBang() []*token.Token {
	lex.lex = (*Lexer).readToken
	lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
	return lex.emitText(token.COMMENT)
}

// readString scans a string literal.  A backslash causes the following rune
// to be taken literally; unescaping happens during parsing.
func (lex *Lexer) readString() []*token.Token {
	for {
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '"' && c != '\\' })
		if lex.scanner.AcceptRune('"') {
			return lex.emitText(token.STRING)
		}
		if lex.scanner.AcceptRune('\\') && lex.scanner.Accept(func(rune) bool { return true }) {
			continue
		}
		if err := lex.scanner.Err(); err != nil {
			return lex.emitError(err)
		}
		return lex.errorf("unterminated string literal")
	}
}

func (lex *Lexer) readNumber() []*token.Token {
	lex.scanner.AcceptSeq(isDigit)
	if lex.followedByWord() {
		lex.scanner.AcceptSeq(isWord)
		return lex.errorf("invalid number literal: %s", lex.scanner.Text())
	}
	// the text may still overflow an int64 but that is detected while parsing.
	return lex.emitText(token.INT)
}

func (lex *Lexer) readSymbol() []*token.Token {
	lex.scanner.AcceptSeq(isWord)
	return lex.emitText(token.SYMBOL)
}

func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	return []*token.Token{lex.scanner.EmitToken(typ)}
}

func (lex *Lexer) emitError(err error) []*token.Token {
	if err == nil || err == io.EOF {
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) []*token.Token {
	return lex.emitError(fmt.Errorf(format, v...))
}

func (lex *Lexer) skipWhitespace() {
	if lex.scanner.AcceptSeqSpace() > 0 {
		lex.scanner.Ignore()
	}
}

func (lex *Lexer) followedByWord() bool {
	c, ok := lex.scanner.Peek()
	return ok && isWord(c)
}

func isWord(c rune) bool {
	return !unicode.IsSpace(c) && !strings.ContainsRune(delimiters, c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
