// Copyright © 2018 The ELPS authors

package rdparser

import (
	"bytes"
	"io"
	"strings"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/lexer"
	"github.com/luthersystems/minilisp/parser/token"
)

// LineReader returns the next line of interactive input after displaying
// prompt.  It returns an error, typically io.EOF, when no more input is
// available.
type LineReader func(prompt string) ([]byte, error)

// Interactive parses one expression at a time from lines of terminal input.
// Lines are requested only when the parser needs more tokens, so a form
// spanning several lines is read with the continuation prompt.  Token
// locations count lines across the whole session and every line read is
// retained so errors can be shown against the input that caused them.
type Interactive struct {
	name       string
	prompt     string
	promptCont string
	readLine   LineReader
	lines      []string
	pending    []*token.Token
	p          *Parser
}

// NewInteractive returns an Interactive parser that reads input through
// readLine.  Tokens are located in a source called name.
func NewInteractive(name string, readLine LineReader) *Interactive {
	p := &Interactive{
		name:     name,
		readLine: readLine,
	}
	p.p = NewFromSource(NewTokenStreamSource(TokenGenerator(p.next)))
	return p
}

// SetPrompts configures the prompts returned by p.Prompt().  The cont
// string is used to prompt the user when the parser is in the middle of
// parsing an expression at the start of a line.
func (p *Interactive) SetPrompts(prompt, cont string) {
	p.prompt = prompt
	p.promptCont = cont
}

// Prompt returns the prompt for the next line of input.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.promptCont
	}
	return p.prompt
}

// IsParsing returns true if p is in the middle of parsing an expression.
func (p *Interactive) IsParsing() bool {
	return p != nil && p.p.parsing
}

// Name returns the source name given to tokens.
func (p *Interactive) Name() string {
	return p.name
}

// Source returns every line read so far, newline terminated.
func (p *Interactive) Source() []byte {
	if len(p.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(p.lines, "\n") + "\n")
}

// Parse parses one expression and returns it.  Parse returns io.EOF once
// the line reader is exhausted between expressions.  After a parse error
// the remaining tokens of the current line are discarded so corrected
// source can be entered.
func (p *Interactive) Parse() (lisp.Item, error) {
	item, err := p.p.Parse()
	if err != nil && err != io.EOF {
		p.pending = nil
		return lisp.None(), err
	}
	return item, err
}

func (p *Interactive) next() []*token.Token {
	for len(p.pending) == 0 {
		line, err := p.readLine(p.Prompt())
		if err != nil {
			return []*token.Token{{Type: token.EOF}}
		}
		line = bytes.TrimRight(line, "\r\n")
		p.lines = append(p.lines, string(line))
		p.pending = p.lex(line, len(p.lines))
	}
	tok := p.pending[0]
	p.pending = p.pending[1:]
	return []*token.Token{tok}
}

// lex returns the tokens of line, which is line number n of the session.
// Lexing stops at the first error token.
func (p *Interactive) lex(line []byte, n int) []*token.Token {
	var tokens []*token.Token
	lex := lexer.New(token.NewScanner(p.name, bytes.NewReader(line)))
	for {
		toks := lex.ReadToken()
		if len(toks) == 0 || toks[0].Type == token.EOF {
			return tokens
		}
		for _, tok := range toks {
			if tok.Source != nil {
				tok.Source.Line = n
			}
		}
		tokens = append(tokens, toks...)
		if toks[0].Type == token.ERROR {
			return tokens
		}
	}
}
