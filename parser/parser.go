// Copyright © 2018 The ELPS authors

package parser

import (
	"fmt"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/rdparser"
	"github.com/luthersystems/minilisp/parser/regexparser"
)

// Reader implementation names accepted by ReaderByName.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// Option configures NewReader.
type Option func(*readerConfig)

type readerConfig struct {
	parsec bool
}

// WithParsec selects the goparsec combinator reader instead of the default
// recursive-descent reader.
func WithParsec() Option {
	return func(c *readerConfig) {
		c.parsec = true
	}
}

// NewReader returns a new lisp.Reader
func NewReader(opts ...Option) lisp.Reader {
	var c readerConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.parsec {
		return regexparser.NewReader()
	}
	return rdparser.NewReader()
}

// ReaderByName returns the reader implementation called name.  An empty
// name selects the default reader.
func ReaderByName(name string) (lisp.Reader, error) {
	switch name {
	case "", ReaderRD:
		return NewReader(), nil
	case ReaderParsec:
		return NewReader(WithParsec()), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", name)
	}
}
