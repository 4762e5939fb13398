// Copyright © 2018 The ELPS authors

// Package rdparser is a recursive-descent parser for minilisp source.
package rdparser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/token"
)

type reader struct{}

// NewReader returns a lisp.Reader backed by the recursive-descent parser.
func NewReader() lisp.Reader {
	return reader{}
}

// Read implements lisp.Reader.
func (reader) Read(name string, r io.Reader) ([]lisp.Item, error) {
	return New(token.NewScanner(name, r)).ParseProgram()
}

// Parser builds lisp items from a stream of tokens.
type Parser struct {
	src *TokenSource
	// parsing is set while an expression is incomplete.
	parsing bool
}

// NewFromSource returns a Parser reading tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{src: src}
}

// New returns a Parser reading tokens lexed from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// ParseProgram parses every expression in the input.  A leading #! line is
// skipped.
func (p *Parser) ParseProgram() ([]lisp.Item, error) {
	if p.src.Peek().Type == token.HASH_BANG {
		p.src.Scan()
		p.src.AcceptType(token.COMMENT)
	}
	var exprs []lisp.Item
	for {
		expr, err := p.Parse()
		switch {
		case err == io.EOF:
			return exprs, nil
		case err != nil:
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// Parse parses one expression.  Parse returns io.EOF if the input is
// exhausted before an expression begins.
func (p *Parser) Parse() (lisp.Item, error) {
	p.skipComments()
	if p.src.IsEOF() {
		return lisp.None(), io.EOF
	}
	return p.ParseExpression()
}

// ParseExpression parses one expression.  Reaching EOF is an error.
func (p *Parser) ParseExpression() (lisp.Item, error) {
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}
	p.skipComments()
	tok := p.next()
	switch tok.Type {
	case token.INT:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return lisp.None(), errorAt(tok, "integer literal overflows int64: %v", tok.Text)
		}
		return lisp.Number(n).WithSource(tok.Source), nil
	case token.BOOL:
		return lisp.Bool(tok.Text == "#t").WithSource(tok.Source), nil
	case token.STRING:
		return lisp.String(token.UnquoteString(tok.Text)).WithSource(tok.Source), nil
	case token.SYMBOL:
		return lisp.Name(tok.Text).WithSource(tok.Source), nil
	case token.QUOTE:
		expr, err := p.ParseExpression()
		if err != nil {
			return lisp.None(), err
		}
		quote := lisp.Name("quote").WithSource(tok.Source)
		return lisp.List(quote, expr).WithSource(tok.Source), nil
	case token.PAREN_L:
		return p.parseList(tok)
	case token.ERROR, token.INVALID:
		return lisp.None(), errorAt(tok, "%s", tok.Text)
	case token.EOF:
		return lisp.None(), errorAt(tok, "unexpected EOF")
	default:
		return lisp.None(), errorAt(tok, "unexpected token: %v", tok.Type)
	}
}

// parseList parses the elements of a list through its closing paren.
func (p *Parser) parseList(open *token.Token) (lisp.Item, error) {
	var cells []lisp.Item
	for {
		p.skipComments()
		if p.src.IsEOF() {
			return lisp.None(), errorAt(open, "unmatched %s", open.Text)
		}
		if p.src.AcceptType(token.PAREN_R) {
			return lisp.List(cells...).WithSource(open.Source), nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return lisp.None(), err
		}
		cells = append(cells, x)
	}
}

// next consumes and returns the next token.  At EOF the EOF token is
// returned.
func (p *Parser) next() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) skipComments() {
	for p.src.AcceptType(token.COMMENT) {
	}
}

func errorAt(tok *token.Token, format string, v ...interface{}) error {
	return &token.LocationError{
		Err:    fmt.Errorf(format, v...),
		Source: tok.Source,
	}
}
