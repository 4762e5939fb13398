// Copyright © 2024 The ELPS authors

package repl

import (
	"errors"
	"io"
	"os"

	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/rdparser"
)

// renderError renders err using the diagnostic renderer.  Locations in REPL
// input are shown against the lines typed so far in the session.
func renderError(w io.Writer, mode diagnostic.ColorMode, p *rdparser.Interactive, err error) {
	d := diagnostic.FromError(err)
	var lerr *lisp.Error
	if errors.As(err, &lerr) && lerr.Condition == lisp.CondUnboundSymbol {
		d.Notes = append(d.Notes, "use (doc 'name) to read the documentation of a native function")
	}
	r := &diagnostic.Renderer{
		Color: mode,
		SourceReader: func(name string) ([]byte, error) {
			if name == p.Name() {
				return p.Source(), nil
			}
			return os.ReadFile(name) //nolint:gosec // reads source files named by error locations
		},
	}
	_ = r.Render(w, d)
}
