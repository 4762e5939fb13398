// Copyright © 2018 The ELPS authors

package rdparser

import (
	"slices"

	"github.com/luthersystems/minilisp/parser/lexer"
	"github.com/luthersystems/minilisp/parser/token"
)

// TokenStream produces tokens in batches.  A *lexer.Lexer is a TokenStream.
// Once input is exhausted ReadToken returns a batch holding an EOF token;
// it never returns an empty batch.
type TokenStream interface {
	ReadToken() []*token.Token
}

// TokenGenerator adapts a function to the TokenStream interface.
type TokenGenerator func() []*token.Token

// ReadToken calls fn.
func (fn TokenGenerator) ReadToken() []*token.Token {
	return fn()
}

// TokenSource buffers a TokenStream so the parser can look one token ahead.
// Token holds the most recently consumed token.
type TokenSource struct {
	Token  *token.Token
	stream TokenStream
	buf    []*token.Token
}

// NewTokenStreamSource returns a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{stream: stream}
}

// NewTokenSource returns a TokenSource over the tokens lexed from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	return NewTokenStreamSource(lexer.New(scanner))
}

// Peek returns the next token without consuming it.
func (s *TokenSource) Peek() *token.Token {
	for len(s.buf) == 0 {
		s.buf = s.stream.ReadToken()
	}
	return s.buf[0]
}

// IsEOF reports whether the stream is exhausted.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

// Scan consumes the next token.  At EOF nothing is consumed, Token is set
// to the EOF token and Scan returns false.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.buf[0]
		return false
	}
	s.advance()
	return true
}

// AcceptType consumes the next token if its type is one of types.
func (s *TokenSource) AcceptType(types ...token.Type) bool {
	if !slices.Contains(types, s.Peek().Type) {
		return false
	}
	s.advance()
	return true
}

func (s *TokenSource) advance() {
	s.Token = s.Peek()
	s.buf = s.buf[1:]
}
