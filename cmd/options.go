// Copyright © 2024 The ELPS authors

package cmd

import (
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/lisp/lisplib/libhelp"
)

// Option configures an exported command factory (DocCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	docs *libhelp.Index
}

// WithDocs injects the documentation index queried by the doc command.
// Embedders that define their own natives pass an index containing them.
func WithDocs(idx *libhelp.Index) Option {
	return func(c *cmdConfig) { c.docs = idx }
}

// resolveDocs returns the injected index or the index of the native
// library.
func (c *cmdConfig) resolveDocs() *libhelp.Index {
	if c.docs != nil {
		return c.docs
	}
	return lisplib.Docs()
}
